package inbox

import (
	"google.golang.org/grpc"

	pb "github.com/oggyb/muzz-match/internal/api/inbox"
	"github.com/oggyb/muzz-match/internal/app"
)

// Registrar ties the Inbox service into the gRPC server
type Registrar struct {
	appCtx *app.AppContext
}

func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

// Register attaches the Inbox service implementation to the gRPC server
func (r *Registrar) Register(s *grpc.Server) {
	pb.RegisterInboxServiceServer(s, NewInboxService(r.appCtx))
}
