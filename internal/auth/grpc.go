package auth

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	svcErr "github.com/oggyb/muzz-match/internal/errors"
)

// UnaryServerInterceptor authenticates every call except the listed full
// method names and stores the Identity in the context.
func UnaryServerInterceptor(v Verifier, public ...string) grpc.UnaryServerInterceptor {
	skip := make(map[string]struct{}, len(public))
	for _, m := range public {
		skip[m] = struct{}{}
	}

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if _, ok := skip[info.FullMethod]; ok {
			return handler(ctx, req)
		}

		md, _ := metadata.FromIncomingContext(ctx)
		var raw string
		if vals := md.Get("authorization"); len(vals) > 0 {
			raw = BearerToken(vals[0])
		}

		identity, err := v.Verify(raw)
		if err != nil {
			return nil, svcErr.Map(err)
		}
		return handler(WithIdentity(ctx, identity), req)
	}
}
