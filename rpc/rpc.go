// rpc/rpc.go
package rpc

import (
	"net"
	"net/rpc"

	"github.com/wfunc/roomserver/logger"
	"github.com/wfunc/roomserver/models"
)

// Server manages the RPC listener.
type Server struct {
	listener net.Listener
	address  string
}

// NewServer creates a new RPC server.
func NewServer(addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener: listener,
		address:  addr,
	}, nil
}

// Start begins listening for RPC requests.
func (s *Server) Start() {
	logger.Log.Infof("RPC server listening on %s", s.address)
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if _, ok := err.(*net.OpError); ok {
				logger.Log.Info("RPC server listener closed.")
				return
			}
			logger.Log.Errorf("RPC server accept error: %v", err)
			continue
		}
		go rpc.ServeConn(conn)
	}
}

// Stop closes the RPC listener.
func (s *Server) Stop() {
	if s.listener != nil {
		logger.Log.Info("Stopping RPC server.")
		s.listener.Close()
	}
}

// AdminService exposes world inspection and maintenance methods. The
// injected callbacks marshal calls onto the run loop so RPC handlers never
// touch world state concurrently.
type AdminService struct {
	stats     func() models.WorldStats
	forceSave func()
}

func NewAdminService(stats func() models.WorldStats, forceSave func()) *AdminService {
	return &AdminService{stats: stats, forceSave: forceSave}
}

type StatsArgs struct{}

type StatsReply struct {
	Stats models.WorldStats
}

func (a *AdminService) WorldStats(args *StatsArgs, reply *StatsReply) error {
	reply.Stats = a.stats()
	return nil
}

type ForceSaveArgs struct{}

type ForceSaveReply struct {
	Queued bool
}

func (a *AdminService) ForceSave(args *ForceSaveArgs, reply *ForceSaveReply) error {
	a.forceSave()
	reply.Queued = true
	return nil
}
