// Package api exposes stored evaluation runs over a small read-only HTTP
// surface.
package api

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/stellarlinkco/gsm8k-eval/internal/config"
	"github.com/stellarlinkco/gsm8k-eval/internal/report"
)

type Server struct {
	router *gin.Engine
	store  *report.Store
	config *config.Config
}

func NewServer(cfg *config.Config, st *report.Store) (*Server, error) {
	if st == nil {
		return nil, errors.New("api: nil report store")
	}

	r := gin.New()
	s := &Server{
		router: r,
		store:  st,
		config: cfg,
	}
	s.registerMiddleware()
	if err := s.registerRoutes(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Server) Run(addr string) error {
	if s == nil || s.router == nil {
		return errors.New("api: nil server")
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		addr = ":8080"
	}
	return s.router.Run(addr)
}
