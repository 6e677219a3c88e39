/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package runtime

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/nabbar/darkit/cancel"
)

// Runtime groups the ambient collaborators an archive operation needs.
// The zero value is not usable; build one with New.
type Runtime struct {
	log    *logrus.Logger
	cfg    Config
	ui     UserInteraction
	cancel cancel.Token
}

// Option configures a Runtime at construction time.
type Option func(*Runtime)

// WithLogger overrides the default (discard) logger.
func WithLogger(l *logrus.Logger) Option {
	return func(r *Runtime) {
		if l != nil {
			r.log = l
		}
	}
}

// WithConfig attaches a decoded Config.
func WithConfig(cfg Config) Option {
	return func(r *Runtime) { r.cfg = cfg }
}

// WithUserInteraction overrides the default blind UserInteraction.
func WithUserInteraction(ui UserInteraction) Option {
	return func(r *Runtime) {
		if ui != nil {
			r.ui = ui
		}
	}
}

// WithCancelToken attaches a caller-owned cancellation token; without
// this option New creates a fresh, never-cancelled one.
func WithCancelToken(tok cancel.Token) Option {
	return func(r *Runtime) {
		if tok != nil {
			r.cancel = tok
		}
	}
}

// New builds a Runtime. Defaults: a discard logger, DefaultConfig(),
// a Blind UserInteraction, and a fresh cancel.Token.
func New(opts ...Option) *Runtime {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	r := &Runtime{
		log:    discard,
		cfg:    DefaultConfig(),
		ui:     Blind{},
		cancel: cancel.New(),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// NewLogger builds a logger writing to out at the given level, formatted
// the way the rest of the tooling expects.
func NewLogger(out io.Writer, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: false,
		FullTimestamp:    true,
		PadLevelText:     true,
	})
	return l
}

func (r *Runtime) Logger() *logrus.Logger { return r.log }

func (r *Runtime) Config() Config { return r.cfg }

func (r *Runtime) UI() UserInteraction { return r.ui }

func (r *Runtime) Cancel() cancel.Token { return r.cancel }
