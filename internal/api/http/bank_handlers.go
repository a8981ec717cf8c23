package http

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/mind-engage/ecoquiz/internal/bank"
)

// GET /bank?catalog=display|scored
func GetBankHandler(c *bank.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, err := bank.ParseKind(r.URL.Query().Get("catalog"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"catalog": kind, "quizzes": c.Items(kind)})
	}
}

// POST /bank/reload?catalog=...  replaces a bank from the configured source.
// The previous bank stays installed when the source fails or sends bad data.
func ReloadBankHandler(c *bank.Catalog, src bank.Source, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if src == nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no bank source configured"})
			return
		}
		kind, err := bank.ParseKind(r.URL.Query().Get("catalog"))
		if err != nil {
			writeError(w, err)
			return
		}
		n, err := bank.Reload(r.Context(), c, kind, src)
		if err != nil {
			log.WithError(err).WithField("catalog", kind).Warn("bank reload failed")
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": "bank source unavailable"})
			return
		}
		log.WithFields(logrus.Fields{"catalog": kind, "count": n}).Info("bank reloaded")
		writeJSON(w, http.StatusOK, map[string]any{"catalog": kind, "count": n})
	}
}
