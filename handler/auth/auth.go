package auth

import (
	"net/http"
	"overseer/core"
	"overseer/handler/render"
	"overseer/handler/request"

	"github.com/fox-one/pkg/logger"
)

// SenderHeader human address of the caller, set by the gateway after it verified the signature
const SenderHeader = "X-Sender"

// HandleAuthentication attach the caller to the request context
func HandleAuthentication(codec core.AddressCodec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			human := r.Header.Get(SenderHeader)
			if human == "" {
				next.ServeHTTP(w, r)
				return
			}

			sender, err := codec.Canonical(human)
			if err != nil {
				logger.FromContext(ctx).WithError(err).Debugln("parse sender")
				render.Error(w, err)
				return
			}

			log := logger.FromContext(ctx).WithField("sender", human)
			ctx = logger.WithContext(request.WithSender(ctx, sender), log)
			next.ServeHTTP(w, r.WithContext(ctx))
		}

		return http.HandlerFunc(fn)
	}
}

// RequireSender reject requests without an authenticated caller
func RequireSender(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		if _, ok := request.SenderFrom(r.Context()); !ok {
			render.Error(w, core.ErrUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	}

	return http.HandlerFunc(fn)
}
