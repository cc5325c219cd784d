package api

import (
	"encoding/json"
	"log"
	"net/http"

	mc "github.com/saeidalz13/submarine-duel/models/connection"
)

// HandleWs upgrades a spectator, hands it a session id and whatever state
// of the match is already known, then listens for its requests.
func (s *Server) HandleWs(w http.ResponseWriter, r *http.Request) {
	// use Upgrade method to make a websocket connection
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}

	session := s.sessionManager.GenerateNewSession(conn)

	resp := mc.NewMessage[mc.RespSessionId](mc.CodeSessionID)
	resp.AddPayload(mc.RespSessionId{SessionID: session.Id()})
	if err := s.sessionManager.WriteToSessionConn(session, resp, mc.MessageTypeJSON); err != nil {
		log.Println(err)
		s.sessionManager.TerminateSession(session)
		return
	}

	for _, code := range []uint8{mc.CodeMatchStart, mc.CodeSnapshot, mc.CodeMatchEnd} {
		if payload := s.Latest(code); payload != nil {
			if err := s.sessionManager.WriteToSessionConn(session, payload, mc.MessageTypeBytes); err != nil {
				log.Println(err)
				s.sessionManager.TerminateSession(session)
				return
			}
		}
	}

	log.Println("a new spectator connected\tRemote Addr: ", conn.RemoteAddr().String())
	go s.manageSession(session)
}

// Spectators only ever ask for the latest state again; the read loop
// mostly notices when they leave.
func (s *Server) manageSession(session *mc.Session) {
	defer s.sessionManager.TerminateSession(session)

	for {
		_, payload, err := s.sessionManager.ReadFromSessionConn(session)
		if err != nil {
			return
		}

		code, err := s.sessionManager.FetchCodeFromMsg(payload)
		if err != nil {
			log.Println("incoming msg does not contain 'code':", err)
			resp := mc.NewMessage[mc.NoPayload](mc.CodeSignalAbsent)
			resp.AddError("incoming req payload must contain 'code' field", "")
			if err := s.sessionManager.WriteToSessionConn(session, resp, mc.MessageTypeJSON); err != nil {
				return
			}
			continue
		}

		var writeErr error
		switch code {
		case mc.CodeMatchStart, mc.CodeSnapshot, mc.CodeMatchEnd:
			if latest := s.Latest(code); latest != nil {
				writeErr = s.sessionManager.WriteToSessionConn(session, latest, mc.MessageTypeBytes)
			} else {
				resp := mc.NewMessage[mc.NoPayload](code)
				resp.AddError("", "nothing to show yet")
				writeErr = s.sessionManager.WriteToSessionConn(session, resp, mc.MessageTypeJSON)
			}

		default:
			resp := mc.NewMessage[mc.NoPayload](mc.CodeInvalidSignal)
			resp.AddError("", "invalid code in the incoming payload")
			writeErr = s.sessionManager.WriteToSessionConn(session, resp, mc.MessageTypeJSON)
		}
		if writeErr != nil {
			return
		}
	}
}

type RespHealth struct {
	Stage      string `json:"stage"`
	Spectators int    `json:"spectators"`
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(RespHealth{Stage: s.stage, Spectators: s.sessionManager.Count()}); err != nil {
		log.Println(err)
	}
}
