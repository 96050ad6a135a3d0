package main

import (
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func parsePubKey(data string) (ed25519.PublicKey, error) {
	pk, err := hex.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode public key: %w", err)
	} else if len(pk) != ed25519.PublicKeySize {
		return nil, errors.New("invalid public key: invalid length")
	}
	return pk, nil
}

// listenAndServe exposes prometheus metrics, plus the interactions webhook
// endpoint when a verification key is configured. The webhook is an
// alternative entry point to the gateway connection; Discord retries on
// anything but a prompt 2xx, so commands are dispatched off the request.
func listenAndServe(cfg *Config) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	if cfg.PubKeyHex != "" {
		pubKey, err := parsePubKey(cfg.PubKeyHex)
		if err != nil {
			log.Fatal("Invalid interactions public key", "err", err)
		}
		mux.HandleFunc("/", interactionEndpoint(cfg.Token, pubKey))
	}

	port := cfg.Port
	if port == "" {
		port = "8080"
		log.Info("Defaulting port", "port", port)
	}

	log.Info("Listening", "port", port)
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		log.Fatal("HTTP server stopped", "err", err)
	}
}

func interactionEndpoint(token string, pubKey ed25519.PublicKey) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if len(pubKey) != ed25519.PublicKeySize || !discordgo.VerifyInteraction(r, pubKey) {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		i := &discordgo.InteractionCreate{}
		if err := json.NewDecoder(r.Body).Decode(i); err != nil {
			log.Warn("Failed to decode interaction", "err", err)
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		if i.Type == discordgo.InteractionPing {
			w.Header().Set("Content-Type", "application/json")
			err := json.NewEncoder(w).Encode(discordgo.InteractionResponse{
				Type: discordgo.InteractionResponsePong,
			})
			if err != nil {
				log.Warn("Failed to send pong", "err", err)
			}
			return
		}

		w.WriteHeader(http.StatusAccepted)
		go func() {
			s, err := discordgo.New("Bot " + token)
			if err != nil {
				log.Error("Failed to create session", "err", err)
				return
			}
			interactionHandler(s, i)
		}()
	}
}
