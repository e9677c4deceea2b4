package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cayleygraph/idiom/idiom"
	"github.com/cayleygraph/idiom/internal/clog"
	"github.com/cayleygraph/idiom/memfetcher"
)

// responseHandler is a request handler that returns an HTTP status code,
// the same shape internal/http/http.go's ResponseHandler uses so a
// wrapper can log it uniformly.
type responseHandler func(w http.ResponseWriter, req *http.Request, params httprouter.Params) int

// logRequest wraps h, logging method/path/status/duration the way
// internal/http/http.go's LogRequest does for cayley's query endpoints.
func logRequest(h responseHandler) httprouter.Handle {
	return func(w http.ResponseWriter, req *http.Request, params httprouter.Params) {
		start := time.Now()
		status := h(w, req, params)
		clog.Infof("%s %s %d %v", req.Method, req.URL.Path, status, time.Since(start))
	}
}

type getRequest struct {
	Value interface{} `json:"value"`
	Path  string      `json:"path"`
}

type getResponse struct {
	Result interface{} `json:"result,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// server holds the state shared across requests: one Store, which backs
// every request's Fetcher (no handler writes records into it), and one
// Scheduler, whose Prometheus registry is published at /metrics.
type server struct {
	store     *memfetcher.Store
	scheduler *idiom.Scheduler
}

// NewServeCmd builds the optional "serve" subcommand: it exposes get()
// over HTTP as POST /get, routed with httprouter exactly as cayley's
// graph/http does for its own query endpoints, and publishes evaluator
// metrics at GET /metrics.
func NewServeCmd() *cobra.Command {
	var host string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve get() over HTTP as POST /get, with metrics at GET /metrics.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			router := newServer().router()
			clog.Infof("idiomget: listening on %s", host)
			return http.ListenAndServe(host, router)
		},
	}
	cmd.Flags().StringVar(&host, "host", "127.0.0.1:8080", "host:port to listen on")
	return cmd
}

func newServer() *server {
	return &server{
		store:     memfetcher.NewStore(),
		scheduler: idiom.NewScheduler(),
	}
}

func (srv *server) router() *httprouter.Router {
	router := httprouter.New()
	router.POST("/get", logRequest(srv.handleGet))
	router.Handler(http.MethodGet, "/metrics", promhttp.HandlerFor(srv.scheduler.Registry(), promhttp.HandlerOpts{}))
	return router
}

func (srv *server) handleGet(w http.ResponseWriter, req *http.Request, _ httprouter.Params) int {
	var body getRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return writeGetResponse(w, http.StatusBadRequest, getResponse{Error: err.Error()})
	}

	value := fromJSON(body.Value)
	path, err := parsePath(body.Path)
	if err != nil {
		return writeGetResponse(w, http.StatusBadRequest, getResponse{Error: err.Error()})
	}

	o := &idiom.Options{
		FuturesEnabled: viper.GetBool(KeyFuturesEnabled),
		Depth:          idiom.ConstDepthBudget(viper.GetInt(KeyMaxDepth)),
		Fetcher:        memfetcher.NewFetcher(srv.store),
		Dispatcher:     builtinDispatcher{},
		Scheduler:      srv.scheduler,
	}
	result, err := idiom.Get(req.Context(), value, path, &idiom.Context{}, o, idiom.NewCursorDoc(value))
	if err != nil {
		return writeGetResponse(w, http.StatusUnprocessableEntity, getResponse{Error: err.Error()})
	}
	return writeGetResponse(w, http.StatusOK, getResponse{Result: encodeValue(result)})
}

func writeGetResponse(w http.ResponseWriter, status int, resp getResponse) int {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
	return status
}
