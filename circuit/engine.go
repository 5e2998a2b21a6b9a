package circuit

import (
	"fmt"
	"log/slog"
)

// Config controls how source text is lexed and parsed.
type Config struct {
	LexMode LexMode
	Logger  *slog.Logger
}

// Engine lexes and parses Circuit source. It holds no per-source state and
// may be reused across inputs.
type Engine struct {
	config Config
	logger *slog.Logger
}

// NewEngine validates cfg and fills in defaults.
func NewEngine(cfg Config) (*Engine, error) {
	switch cfg.LexMode {
	case LexStrict, LexPermissive:
	default:
		return nil, fmt.Errorf("invalid lex mode %s", cfg.LexMode)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{config: cfg, logger: logger}, nil
}

func MustNewEngine(cfg Config) *Engine {
	engine, err := NewEngine(cfg)
	if err != nil {
		panic(err)
	}
	return engine
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() Config {
	return e.config
}

// Tokenize lexes the whole source up front. If any lexical errors occur the
// result is a LexErrors value listing all of them and no stream is returned.
func (e *Engine) Tokenize(source string) (*TokenStream, error) {
	stream, err := newTokenStream(source, e.config.LexMode)
	if err != nil {
		e.logger.Debug("tokenize failed", "bytes", len(source), "error", err)
		return nil, err
	}
	e.logger.Debug("tokenized", "bytes", len(source), "tokens", stream.Len(), "mode", e.config.LexMode.String())
	return stream, nil
}

// Parse tokenizes and parses source into a program. Lexical failures are
// returned as LexErrors; grammar failures as a single *ParseError.
func (e *Engine) Parse(source string) (*Program, error) {
	stream, err := e.Tokenize(source)
	if err != nil {
		return nil, err
	}
	return e.ParseTokens(stream)
}

// ParseTokens drains stream into a program.
func (e *Engine) ParseTokens(stream *TokenStream) (*Program, error) {
	program, err := newParser(stream).ParseProgram()
	if err != nil {
		e.logger.Debug("parse failed", "error", err)
		return nil, err
	}
	e.logger.Debug("parsed", "statements", len(program.Statements))
	return program, nil
}

var defaultEngine = MustNewEngine(Config{})

// Tokenize lexes source in strict mode.
func Tokenize(source string) (*TokenStream, error) {
	return defaultEngine.Tokenize(source)
}

// Parse lexes and parses source in strict mode.
func Parse(source string) (*Program, error) {
	return defaultEngine.Parse(source)
}
