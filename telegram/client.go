// Copyright (c) 2024 edgegram

package telegram

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/edgegram/edgegram/internal/utils"
)

// Client is the main struct of the library: one bot token, one outbound HTTP
// collaborator and one dispatcher. Clients are independent; nothing is shared
// between two instances, so a multi-tenant process can hold one per request
// with its own credentials.
type Client struct {
	token      string
	apiURL     string
	httpClient *http.Client
	dispatcher *UpdateDispatcher
	stop       chan struct{}
	stopOnce   sync.Once
	offset     int64
	Log        *Logger
}

// ClientConfig is the configuration struct for the client.
type ClientConfig struct {
	// Bot token from @BotFather, required
	Token string
	// Bot API base URL, default: https://api.telegram.org
	APIURL string
	// HTTP client for outbound calls, default: 35s timeout client
	HTTPClient *http.Client
	// Set log level (trace, debug, info, warn, error, disable), default: info
	LogLevel string
	// Custom logger, overrides LogLevel
	Logger *Logger
	// Dispatch redelivered update_ids instead of skipping them
	AllowRedelivery bool
}

// NewClient builds a client and its dispatcher from the config.
func NewClient(c ClientConfig) (*Client, error) {
	if strings.TrimSpace(c.Token) == "" {
		return nil, errors.New("bot token cannot be empty, get one from @BotFather")
	}

	log := c.Logger
	if log == nil {
		log = utils.NewLogger("edgegram").SetLevel(parseLogLevel(c.LogLevel))
	}

	client := &Client{
		token:      c.Token,
		apiURL:     strings.TrimSuffix(getStr(c.APIURL, DefaultAPIURL), "/"),
		httpClient: c.HTTPClient,
		stop:       make(chan struct{}),
		Log:        log,
	}
	if client.httpClient == nil {
		// long polling holds the connection up to 30s; leave headroom
		client.httpClient = &http.Client{Timeout: 35 * time.Second}
	}
	client.dispatcher = newUpdateDispatcher(log, !c.AllowRedelivery)
	client.Log.Debug("client initialized")
	return client, nil
}

func parseLogLevel(s string) utils.LogLevel {
	switch strings.ToLower(s) {
	case "trace":
		return utils.TraceLevel
	case "debug":
		return utils.DebugLevel
	case "", "info":
		return utils.InfoLevel
	case "warn", "warning":
		return utils.WarnLevel
	case "error":
		return utils.ErrorLevel
	case "disable", "none":
		return utils.NoLevel
	}
	return utils.InfoLevel
}

func getStr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
