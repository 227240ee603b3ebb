// server/server.go
package server

import (
	"net/http"
	"net/rpc"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/wfunc/roomserver/logger"
	"github.com/wfunc/roomserver/models"
	"github.com/wfunc/roomserver/monitor"
	"github.com/wfunc/roomserver/network"
	"github.com/wfunc/roomserver/protocol"
	roomserver_rpc "github.com/wfunc/roomserver/rpc"
	"github.com/wfunc/roomserver/session"
	"github.com/wfunc/roomserver/timer"
	"github.com/wfunc/roomserver/world"
)

type GameServer struct {
	addr           string
	upgrader       websocket.Upgrader
	sessionManager *session.Manager
	world          *world.World
	loop           *timer.Loop
	monitor        *monitor.Monitor
	rpcServer      *roomserver_rpc.Server
	autosave       time.Duration
}

func NewGameServer(addr, rpcAddr string, w *world.World, loop *timer.Loop, sm *session.Manager, mon *monitor.Monitor, autosave time.Duration) *GameServer {
	s := &GameServer{
		addr:           addr,
		sessionManager: sm,
		world:          w,
		loop:           loop,
		monitor:        mon,
		autosave:       autosave,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // 允许所有跨域请求
			},
		},
	}

	// 初始化RPC服务器
	rpcServer, err := roomserver_rpc.NewServer(rpcAddr)
	if err != nil {
		logger.Log.Fatalf("Failed to create RPC server: %v", err)
	}
	s.rpcServer = rpcServer

	// 注册RPC服务（通过运行循环访问世界状态）
	adminService := roomserver_rpc.NewAdminService(
		func() models.WorldStats {
			var stats models.WorldStats
			loop.Call(func() { stats = w.Stats() })
			return stats
		},
		func() {
			loop.Post(w.QueueSaveAll)
		},
	)
	rpc.Register(adminService)

	return s
}

// Start schedules the tick and autosave timers and blocks serving the
// websocket endpoint. A bind failure is the only fatal error.
func (s *GameServer) Start() error {
	s.loop.Start()
	s.loop.AddTimer(world.TickInterval, world.TickInterval, s.world.Step)
	if s.autosave > 0 {
		s.loop.AddTimer(s.autosave, s.autosave, s.world.QueueSaveAll)
	}

	go s.rpcServer.Start()

	http.HandleFunc("/ws", s.handleWebSocket)
	logger.Log.Infof("Game server listening on %s", s.addr)
	return http.ListenAndServe(s.addr, nil)
}

func (s *GameServer) Shutdown() {
	s.rpcServer.Stop()
	s.loop.Stop()
}

func (s *GameServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Infof("Failed to upgrade connection: %v", err)
		return
	}
	s.handleConnection(conn)
}

func (s *GameServer) handleConnection(conn *websocket.Conn) {
	wsConn := network.NewWSConnection(conn)
	sess := session.NewSession(uuid.New().String(), wsConn)
	s.sessionManager.Add(sess)

	logger.Log.Infof("New connection from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())

	defer func() {
		logger.Log.Infof("Connection closed from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())
		s.loop.Call(func() {
			s.world.Disconnect(sess.GetID())
		})
		s.sessionManager.Remove(sess.GetID())
		wsConn.Close()
	}()

	for {
		frame, err := wsConn.ReadFrame()
		if err != nil {
			return
		}

		msg, err := protocol.DecodeClientMessage(frame)
		if err != nil {
			// Protocol errors are dropped; the connection stays open.
			logger.Log.Infof("Session %s sent a bad frame: %v", sess.GetID(), err)
			continue
		}

		s.monitor.IncMessagesReceived()

		// All world access happens on the run loop, one handler at a time.
		s.loop.Post(func() {
			s.handleMessage(sess, msg)
		})
	}
}

// handleMessage dispatches one decoded client message. The type switch is
// exhaustive over the closed protocol.ClientMessage set.
func (s *GameServer) handleMessage(sess *session.Session, msg protocol.ClientMessage) {
	if join, ok := msg.(*protocol.Join); ok {
		s.handleJoin(sess, join)
		return
	}

	// Any action before a successful join is an authentication error.
	playerID := sess.GetPlayerID()
	if playerID == "" {
		s.sendError(sess, "join required")
		return
	}

	var err error
	switch m := msg.(type) {
	case *protocol.Input:
		err = s.world.HandleInput(playerID, m)
	case *protocol.ResetPosition:
		err = s.world.ResetPosition(playerID)
	case *protocol.PlaceCollider:
		err = s.world.PlaceCollider(playerID, m)
	case *protocol.RemoveCollider:
		err = s.world.RemoveCollider(playerID, m)
	case *protocol.PlaceObject:
		err = s.world.PlaceObject(playerID, m)
	case *protocol.RemoveObject:
		err = s.world.RemoveObject(playerID, m)
	case *protocol.Hug:
		err = s.world.HugRequest(playerID)
	case *protocol.BenchSit:
		err = s.world.BenchSit(playerID)
	case *protocol.BenchStand:
		err = s.world.BenchStand(playerID)
	case *protocol.Join:
		// handled above
	}

	if err != nil {
		s.sendError(sess, err.Error())
	}
}

func (s *GameServer) handleJoin(sess *session.Session, msg *protocol.Join) {
	if sess.Joined() {
		s.sendError(sess, "already joined")
		return
	}

	playerID, err := s.world.Join(sess.GetID(), msg)
	if err != nil {
		// The connection stays open and unauthenticated; it may retry.
		s.sendError(sess, err.Error())
		return
	}
	sess.Bind(playerID)
}

func (s *GameServer) sendError(sess *session.Session, text string) {
	data, err := protocol.Encode(protocol.NewError(text))
	if err != nil {
		return
	}
	if err := sess.Send(data); err != nil {
		logger.Log.Infof("Failed to send error to session %s: %v", sess.GetID(), err)
	}
}
