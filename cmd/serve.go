package cmd

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/mididiff/compare"
	"github.com/jsphweid/mididiff/model"
	"github.com/jsphweid/mididiff/render"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default $MIDIDIFF_ADDR)")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve OLD NEW",
	Short: "Serves the diff of two files over http",
	Long: `Serves the diff of two files over http.
GET /diff?channel=N returns the tagged notes as json, GET /roll.png?channel=N the piano roll.
Leave out channel to compare every channel.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession(args[0], args[1])
		if err != nil {
			return err
		}
		addr := serveAddr
		if addr == "" {
			addr = cfg.Addr
		}
		srv := NewServer(s, renderOptions(), log)
		log.Infow("Starting HTTP server", "addr", addr)
		return http.ListenAndServe(addr, srv.Handler())
	},
}

type Server struct {
	session *compare.Session
	opts    render.Options
	log     *zap.SugaredLogger
}

func NewServer(s *compare.Session, opts render.Options, log *zap.SugaredLogger) *Server {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Server{session: s, opts: opts, log: log}
}

func (s *Server) Handler() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/diff", s.HandleDiff).Methods("GET")
	router.HandleFunc("/roll.png", s.HandleRoll).Methods("GET")
	return cors.Default().Handler(router)
}

func (s *Server) writeJSON(w http.ResponseWriter, requestId string, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Errorw("could not write response", "requestId", requestId, "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, requestId string, msg string, code int) {
	s.writeJSON(w, requestId, code, model.ErrorResponse{Error: msg})
}

// run compares for the request's channel query. On failure the error
// response has already been written.
func (s *Server) run(w http.ResponseWriter, r *http.Request, requestId string) (compare.Report, bool) {
	filter, err := channelFilter(r.URL.Query().Get("channel"))
	if err != nil {
		s.writeError(w, requestId, err.Error(), http.StatusBadRequest)
		return compare.Report{}, false
	}
	report, err := s.session.Run(filter)
	if err != nil {
		s.log.Errorw("compare failed", "requestId", requestId, "error", err)
		s.writeError(w, requestId, err.Error(), http.StatusUnprocessableEntity)
		return report, false
	}
	return report, true
}

func (s *Server) HandleDiff(w http.ResponseWriter, r *http.Request) {
	requestId := uuid.New().String()
	s.log.Debugw("diff requested", "requestId", requestId, "query", r.URL.RawQuery)

	report, ok := s.run(w, r, requestId)
	if !ok {
		return
	}

	res := model.DiffResponse{
		RequestId:      requestId,
		LengthMismatch: report.LengthMismatch,
		Old:            report.Old,
		New:            report.New,
		OldAnomalies:   report.OldAnomalies,
		NewAnomalies:   report.NewAnomalies,
	}
	if report.Filter.Enabled {
		ch := report.Filter.Channel
		res.Channel = &ch
	}
	s.writeJSON(w, requestId, http.StatusOK, res)
}

func (s *Server) HandleRoll(w http.ResponseWriter, r *http.Request) {
	requestId := uuid.New().String()
	s.log.Debugw("roll requested", "requestId", requestId, "query", r.URL.RawQuery)

	report, ok := s.run(w, r, requestId)
	if !ok {
		return
	}
	img, err := render.Roll(s.session.Old, s.session.New, report, s.opts)
	if err != nil {
		s.log.Errorw("render failed", "requestId", requestId, "error", err)
		s.writeError(w, requestId, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err := render.WritePNG(w, img); err != nil {
		s.log.Errorw("could not write png", "requestId", requestId, "error", err)
	}
}
