package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
)

const corsAllowHeaders = "authorization, x-client-info, apikey, content-type"

type commandRegisterer interface {
	registerCommands(ctx context.Context) ([]*discordgo.ApplicationCommand, error)
}

type pinger interface {
	Ping(ctx context.Context) error
}

// newHTTPHandler routes OPTIONS to a CORS answer, GET /register-commands to
// command registration, GET /healthz to a store check and every POST to the
// interactions endpoint.
func newHTTPHandler(interactions http.Handler, reg commandRegisterer, store pinger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(logRequests)
	r.Use(recoverPanics)
	r.Use(allowAnyOrigin)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "X-Client-Info", "Apikey", "Content-Type"},
	}).Handler)
	r.Use(answerOptions)

	r.Get("/register-commands", handleRegisterCommands(reg))
	r.Get("/healthz", handleHealth(store))
	r.Post("/*", interactions.ServeHTTP)

	return r
}

// allowAnyOrigin sets the static CORS headers on every response, whether or
// not the request carries an Origin.
func allowAnyOrigin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", corsAllowHeaders)
		next.ServeHTTP(w, r)
	})
}

// answerOptions handles OPTIONS requests that are not CORS preflights.
func answerOptions(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
}

func handleRegisterCommands(reg commandRegisterer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cmds, err := reg.registerCommands(r.Context())
		if err != nil {
			log.Err(err).Msg("failed to register commands")

			var regErr *RegistrationError
			if errors.As(err, &regErr) {
				writeJSON(w, http.StatusInternalServerError, map[string]any{
					"error":   fmt.Sprintf("Failed to register command: %d", regErr.Status),
					"details": regErr.Body,
				})
				return
			}
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"error":   "Failed to register commands",
				"details": err.Error(),
			})
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": fmt.Sprintf("%d commands registered successfully!", len(cmds)),
			"command": cmds,
		})
	}
}

func handleHealth(store pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			log.Err(err).Msg("health check failed")
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "error"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Err(err).Msg("error sending response")
	}
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("http request")
		}()

		next.ServeHTTP(ww, r)
	})
}

// recoverPanics turns a panicking handler into a generic 500.
func recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Error().Interface("panic", rec).Str("path", r.URL.Path).Msg("recovered from panic")
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			}
		}()

		next.ServeHTTP(w, r)
	})
}
