package directoryserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"e2ekeys/internal/directory"
	"e2ekeys/internal/domain"
	"e2ekeys/internal/logging"
)

const maxBody = 1 << 20

// Server serves the key directory API from a Store.
type Server struct {
	store Store
	log   logging.Logger
}

func New(store Store, log logging.Logger) *Server {
	return &Server{store: store, log: log}
}

// Handler returns the routed API with access logging.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	v1 := r.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/keys", s.registerKey).Methods(http.MethodPost)
	v1.HandleFunc("/keys", s.rotateKey).Methods(http.MethodPut)
	v1.HandleFunc("/keys/{userId}", s.getKey).Methods(http.MethodGet)
	v1.HandleFunc("/groups/{groupId}/members", s.listMembers).Methods(http.MethodGet)
	v1.HandleFunc("/groups/{groupId}/members/{userId}", s.addMember).Methods(http.MethodPut)
	v1.HandleFunc("/groups/{groupId}/keys/self", s.ownWrappedKey).Methods(http.MethodGet)
	v1.HandleFunc("/groups/{groupId}/keys", s.publishKeys).Methods(http.MethodPost)

	r.Use(s.accessLog)
	return r
}

func (s *Server) registerKey(w http.ResponseWriter, r *http.Request) {
	s.putKey(w, r, false)
}

func (s *Server) rotateKey(w http.ResponseWriter, r *http.Request) {
	s.putKey(w, r, true)
}

func (s *Server) putKey(w http.ResponseWriter, r *http.Request, replace bool) {
	caller, ok := s.caller(w, r)
	if !ok {
		return
	}
	var req directory.RegisterRequest
	if !s.decode(w, r, &req) {
		return
	}
	if len(req.PublicKey) != 32 {
		writeError(w, http.StatusUnprocessableEntity, "publicKey must be 32 bytes")
		return
	}

	rec := domain.PublicKeyRecord{UserID: caller, PublicKey: req.PublicKey, KeyID: domain.KeyID(uuid.NewString())}
	var err error
	if replace {
		err = s.store.ReplaceKey(r.Context(), rec)
	} else {
		err = s.store.RegisterKey(r.Context(), rec)
	}
	switch {
	case errors.Is(err, ErrExists):
		writeError(w, http.StatusConflict, "public key already registered")
	case err != nil:
		s.internal(w, err)
	default:
		s.log.Infof("registered key %s for %s", rec.KeyID, caller)
		writeJSON(w, http.StatusCreated, directory.RegisterResponse{KeyID: rec.KeyID})
	}
}

func (s *Server) getKey(w http.ResponseWriter, r *http.Request) {
	userID := domain.UserID(mux.Vars(r)["userId"])
	rec, ok, err := s.store.Key(r.Context(), userID)
	if err != nil {
		s.internal(w, err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "no key registered")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) listMembers(w http.ResponseWriter, r *http.Request) {
	groupID := domain.GroupID(mux.Vars(r)["groupId"])
	ms, err := s.store.Members(r.Context(), groupID)
	if err != nil {
		s.internal(w, err)
		return
	}
	if ms == nil {
		ms = []domain.GroupMember{}
	}
	writeJSON(w, http.StatusOK, ms)
}

func (s *Server) addMember(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var req directory.MemberRequest
	if r.ContentLength != 0 && !s.decode(w, r, &req) {
		return
	}
	err := s.store.AddMember(r.Context(), domain.GroupID(vars["groupId"]), domain.UserID(vars["userId"]), req.UserName)
	if err != nil {
		s.internal(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) ownWrappedKey(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.caller(w, r)
	if !ok {
		return
	}
	wk, ok, err := s.store.WrappedKey(r.Context(), domain.GroupID(mux.Vars(r)["groupId"]), caller)
	if err != nil {
		s.internal(w, err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "no wrapped key for caller")
		return
	}
	writeJSON(w, http.StatusOK, wk)
}

func (s *Server) publishKeys(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.caller(w, r)
	if !ok {
		return
	}
	groupID := domain.GroupID(mux.Vars(r)["groupId"])
	var req directory.PublishRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.GroupID != "" && req.GroupID != groupID {
		writeError(w, http.StatusUnprocessableEntity, "groupId does not match path")
		return
	}
	if len(req.EncryptedKeys) == 0 {
		writeError(w, http.StatusUnprocessableEntity, "encryptedKeys is empty")
		return
	}
	for _, e := range req.EncryptedKeys {
		if e.UserID == "" || len(e.EncryptedGroupKey.Ciphertext) == 0 || len(e.EncryptedGroupKey.Nonce) == 0 {
			writeError(w, http.StatusUnprocessableEntity, "incomplete wrapped key entry")
			return
		}
	}

	b := Bundle{Publisher: caller, Entries: req.EncryptedKeys}
	rec, ok, err := s.store.Key(r.Context(), caller)
	if err != nil {
		s.internal(w, err)
		return
	}
	if ok {
		b.PublisherKey = rec.PublicKey
	}
	if err := s.store.PublishBundle(r.Context(), groupID, b); err != nil {
		s.internal(w, err)
		return
	}
	s.log.Infof("%s published %d wrapped keys for group %s", caller, len(b.Entries), groupID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) caller(w http.ResponseWriter, r *http.Request) (domain.UserID, bool) {
	u := r.Header.Get(directory.HeaderUserID)
	if u == "" {
		writeError(w, http.StatusUnauthorized, "missing "+directory.HeaderUserID)
		return "", false
	}
	return domain.UserID(u), true
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(v); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return false
	}
	return true
}

func (s *Server) internal(w http.ResponseWriter, err error) {
	s.log.Errorf("directory: %v", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, directory.ErrorResponse{Error: msg})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		s.log.Debugf("%s %s from=%s user=%s status=%d bytes=%d dur=%s",
			r.Method, r.URL.Path, r.RemoteAddr, r.Header.Get(directory.HeaderUserID), rec.status, rec.bytes, time.Since(start))
	})
}
