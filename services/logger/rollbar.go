package logsvc

import (
	"fmt"
	"io"
	"os"

	gokitlog "github.com/go-kit/log"
	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/trezcool/gradebook/core"
)

type RollbarLogger struct {
	local gokitlog.Logger
}

var _ core.Logger = (*RollbarLogger)(nil)

// NewRollbarLogger reports to Rollbar and writes logfmt lines to `w`.
func NewRollbarLogger(w io.Writer, component string, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	if host, err := os.Hostname(); err == nil {
		rollbar.SetServerHost(host)
	}

	local := gokitlog.NewLogfmtLogger(gokitlog.NewSyncWriter(w))
	local = gokitlog.With(local, "ts", gokitlog.DefaultTimestampUTC, "component", component)
	return &RollbarLogger{local: local}
}

func (l RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// expected fmt: msg | error, map[string]interface{}, core.UserRef
func (l RollbarLogger) prepare(msg string, args []interface{}) []interface{} {
	var usrSet bool
	newArgs := make([]interface{}, 0, len(args)+1)
	newArgs = append(newArgs, msg)
	for _, arg := range args {
		// set logged in User
		if usr, ok := arg.(core.UserRef); ok {
			if !usrSet { // only set one User
				rollbar.SetPerson(usr.ID, "", usr.Email)
				usrSet = true
			}
		} else {
			newArgs = append(newArgs, arg)
		}
	}
	if !usrSet {
		rollbar.ClearPerson()
	}
	return newArgs
}

func (l RollbarLogger) print(level, msg string, args []interface{}) {
	keyvals := []interface{}{"level", level, "msg", msg}
	for _, arg := range args {
		switch a := arg.(type) {
		case error:
			keyvals = append(keyvals, "err", a.Error())
		case core.UserRef:
			keyvals = append(keyvals, "user", a.ID)
		case map[string]interface{}:
			for k, v := range a {
				keyvals = append(keyvals, k, v)
			}
		default:
			keyvals = append(keyvals, "extra", fmt.Sprintf("%+v", a))
		}
	}
	_ = l.local.Log(keyvals...)
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) {
	rollbar.Debug(l.prepare(msg, args)...)
	l.print("debug", msg, args)
}

func (l RollbarLogger) Info(msg string, args ...interface{}) {
	rollbar.Info(l.prepare(msg, args)...)
	l.print("info", msg, args)
}

func (l RollbarLogger) Warn(msg string, args ...interface{}) {
	rollbar.Warning(l.prepare(msg, args)...)
	l.print("warn", msg, args)
}

func (l RollbarLogger) Error(msg string, args ...interface{}) {
	rollbar.Error(l.prepare(msg, args)...)
	l.print("error", msg, args)
}

func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	rollbar.Critical(l.prepare(msg, args)...)
	l.print("fatal", msg, args)
	rollbar.Wait()
	os.Exit(1)
}
