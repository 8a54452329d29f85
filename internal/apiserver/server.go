// Package apiserver is an async job service around the Filler: submit
// a grid and a named dictionary over HTTP, poll for the result, or
// subscribe over a websocket for a single completion push.
package apiserver

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/crossplay/fillengine/pkg/dictionary"
	"github.com/crossplay/fillengine/pkg/filler"
	"github.com/crossplay/fillengine/pkg/grid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Options configures a Server. ServiceSecret, SQLitePath, RedisURL and
// DictionaryDir come from internal/config.Config (cmd/crossgen's serve
// subcommand copies them over); MaxFillTime and Workers have no Config
// counterpart, and Config's Port is passed to Run instead.
type Options struct {
	ServiceSecret string
	SQLitePath    string
	RedisURL      string
	DictionaryDir string
	MaxFillTime   time.Duration
	Workers       int
}

// Server wires the gin router, job store, dictionary cache, worker
// pool, and completion notifier together.
type Server struct {
	opts     Options
	router   *gin.Engine
	store    *JobStore
	auth     *AuthService
	notifier *Notifier
	redis    *redis.Client

	jobs chan string // queued job IDs awaiting a worker

	mu           sync.Mutex
	dictionaries map[string]*dictionary.Dictionary
}

// New builds a Server. It opens the sqlite job store at opts.SQLitePath
// and, if opts.RedisURL is set, connects a redis client backing the
// Filler's word/viability caches; a failed or absent redis connection
// is not fatal - fills simply fall back to the default in-process map
// cache.
func New(opts Options) (*Server, error) {
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.MaxFillTime <= 0 {
		opts.MaxFillTime = 120 * time.Second
	}

	store, err := OpenJobStore(opts.SQLitePath)
	if err != nil {
		return nil, err
	}

	var rdb *redis.Client
	if opts.RedisURL != "" {
		rdbOpt, err := redis.ParseURL(opts.RedisURL)
		if err != nil {
			log.Printf("apiserver: invalid REDIS_URL, falling back to in-process caches: %v", err)
		} else {
			client := redis.NewClient(rdbOpt)
			if err := client.Ping(context.Background()).Err(); err != nil {
				log.Printf("apiserver: redis unreachable, falling back to in-process caches: %v", err)
			} else {
				rdb = client
			}
		}
	}

	s := &Server{
		opts:         opts,
		store:        store,
		auth:         NewAuthService(opts.ServiceSecret),
		notifier:     NewNotifier(),
		redis:        rdb,
		jobs:         make(chan string, 256),
		dictionaries: make(map[string]*dictionary.Dictionary),
	}

	s.router = s.buildRouter()
	return s, nil
}

// Run starts the worker pool and blocks serving HTTP on addr until ctx
// is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	stop := make(chan struct{})
	go s.notifier.Run(stop)
	defer close(stop)

	for i := 0; i < s.opts.Workers; i++ {
		go s.worker(ctx)
	}

	srv := &http.Server{Addr: addr, Handler: s.router}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("apiserver: listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close releases the job store and redis connection.
func (s *Server) Close() error {
	if s.redis != nil {
		s.redis.Close()
	}
	return s.store.Close()
}

func (s *Server) buildRouter() *gin.Engine {
	r := gin.Default()
	r.Use(CORS())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().Unix()})
	})

	jobs := r.Group("/jobs")
	jobs.Use(RequireAuth(s.auth))
	{
		jobs.POST("", s.handleSubmit)
		jobs.GET("/:id", s.handleGet)
		jobs.GET("/:id/ws", s.handleSubscribe)
	}

	return r
}

// loadDictionary loads and caches a named dictionary from
// opts.DictionaryDir/<name>.dict.
func (s *Server) loadDictionary(name string) (*dictionary.Dictionary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d, ok := s.dictionaries[name]; ok {
		return d, nil
	}

	path := filepath.Join(s.opts.DictionaryDir, name+".dict")
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("apiserver: unknown dictionary %q: %w", name, err)
	}
	d, err := dictionary.LoadBinary(path)
	if err != nil {
		return nil, fmt.Errorf("apiserver: failed to load dictionary %q: %w", name, err)
	}
	s.dictionaries[name] = d
	return d, nil
}

// newFiller builds a Filler for dict, backed by redis-shared caches
// when a redis connection is configured, otherwise the default
// in-process map cache.
func (s *Server) newFiller(dict *dictionary.Dictionary, dictionaryName string) *filler.Filler {
	if s.redis == nil {
		return filler.New(dict, false, s.opts.MaxFillTime)
	}
	words := NewRedisWordStore(s.redis, dictionaryName)
	viable := NewRedisViabilityStore(s.redis, dictionaryName)
	return filler.NewWithStores(dict, false, s.opts.MaxFillTime, words, viable)
}

// worker pulls queued job IDs and runs them to completion: load the
// row back out, run the fill, write the terminal state.
func (s *Server) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case id := <-s.jobs:
			s.runJob(id)
		}
	}
}

func (s *Server) runJob(id string) {
	job, ok, err := s.store.Get(id)
	if err != nil || !ok {
		log.Printf("apiserver: job %s vanished before it could run: %v", id, err)
		return
	}

	if err := s.store.MarkRunning(id); err != nil {
		log.Printf("apiserver: failed to mark job %s running: %v", id, err)
	}

	initial, err := grid.Parse(job.GridText)
	if err != nil {
		s.finishJob(id, false, "", fmt.Sprintf("invalid grid: %v", err), 0)
		return
	}

	dict, err := s.loadDictionary(job.DictionaryName)
	if err != nil {
		s.finishJob(id, false, "", err.Error(), 0)
		return
	}

	f := s.newFiller(dict, job.DictionaryName)
	solved, err := f.Fill(initial)

	candidates := 0
	if timeErr, ok := err.(*filler.TimeExceededError); ok {
		candidates = timeErr.Candidates
	}

	if err != nil {
		s.finishJob(id, false, "", err.Error(), candidates)
		return
	}
	s.finishJob(id, true, solved.Display(), "", candidates)
}

func (s *Server) finishJob(id string, succeeded bool, resultText, errMsg string, candidates int) {
	if err := s.store.Complete(id, succeeded, resultText, errMsg, candidates, time.Now()); err != nil {
		log.Printf("apiserver: failed to persist completion of job %s: %v", id, err)
	}

	status := StatusFailed
	if succeeded {
		status = StatusSucceeded
	}
	s.notifier.Notify(CompletionEvent{JobID: id, Status: status, ResultText: resultText, Error: errMsg})
}

// newJobID generates a fill-job identifier.
func newJobID() string {
	return uuid.New().String()
}
