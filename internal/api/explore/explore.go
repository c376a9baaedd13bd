// Package explore defines the muzz.match.v1.ExploreService wire contract.
package explore

// SwipeRequest records the caller's decision about another user.
type SwipeRequest struct {
	RecipientUserID string `json:"recipient_user_id"`
	Decision        string `json:"decision"`
}

func (r *SwipeRequest) GetRecipientUserID() string {
	if r == nil {
		return ""
	}
	return r.RecipientUserID
}

func (r *SwipeRequest) GetDecision() string {
	if r == nil {
		return ""
	}
	return r.Decision
}

type Swipe struct {
	ID            string `json:"id"`
	FromUserID    string `json:"from_user_id"`
	ToUserID      string `json:"to_user_id"`
	Decision      string `json:"decision"`
	UnixTimestamp uint64 `json:"unix_timestamp"`
}

type SwipeResponse struct {
	Swipe   *Swipe `json:"swipe"`
	Matched bool   `json:"matched"`
	Match   *Match `json:"match,omitempty"`
}

// Profile is a discovery card.
type Profile struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Age         int    `json:"age,omitempty"`
	Gender      string `json:"gender"`
	City        string `json:"city,omitempty"`
	Country     string `json:"country,omitempty"`
	Bio         string `json:"bio,omitempty"`
}

type DiscoverRequest struct {
	Limit uint32 `json:"limit,omitempty"`
}

func (r *DiscoverRequest) GetLimit() uint32 {
	if r == nil {
		return 0
	}
	return r.Limit
}

type DiscoverResponse struct {
	Profiles []*Profile `json:"profiles"`
}

type ListLikedYouRequest struct {
	PaginationToken *string `json:"pagination_token,omitempty"`
	Limit           uint32  `json:"limit,omitempty"`
}

func (r *ListLikedYouRequest) GetPaginationToken() string {
	if r == nil || r.PaginationToken == nil {
		return ""
	}
	return *r.PaginationToken
}

func (r *ListLikedYouRequest) GetLimit() uint32 {
	if r == nil {
		return 0
	}
	return r.Limit
}

type Liker struct {
	ActorID       string `json:"actor_id"`
	UnixTimestamp uint64 `json:"unix_timestamp"`
	Decision      string `json:"decision"`
}

type ListLikedYouResponse struct {
	Likers              []*Liker `json:"likers"`
	NextPaginationToken *string  `json:"next_pagination_token,omitempty"`
}

func (r *ListLikedYouResponse) GetNextPaginationToken() string {
	if r == nil || r.NextPaginationToken == nil {
		return ""
	}
	return *r.NextPaginationToken
}

type CountLikedYouRequest struct{}

type CountLikedYouResponse struct {
	Count uint64 `json:"count"`
}

// Match is a match as seen by the caller.
type Match struct {
	ID        string   `json:"id"`
	Other     *Profile `json:"other"`
	MatchedAt uint64   `json:"matched_at"`
	IsActive  bool     `json:"is_active"`
	Seen      bool     `json:"seen"`
}

type ListMatchesRequest struct{}

type ListMatchesResponse struct {
	Matches []*Match `json:"matches"`
}

// MatchRequest addresses one match of the caller.
type MatchRequest struct {
	MatchID string `json:"match_id"`
}

func (r *MatchRequest) GetMatchID() string {
	if r == nil {
		return ""
	}
	return r.MatchID
}

type MatchResponse struct {
	Match *Match `json:"match"`
}
