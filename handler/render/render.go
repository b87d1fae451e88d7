package render

import (
	"encoding/json"
	"net/http"
	"overseer/handler/codes"

	"github.com/sirupsen/logrus"
)

type H map[string]interface{}

// JSON render with json
func JSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Errorln("render json")
	}
}

// Error write error as {code, msg}, status derived from the error code
func Error(w http.ResponseWriter, err error) {
	code := codes.Of(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(codes.Status(code))

	if err := json.NewEncoder(w).Encode(H{
		"code":      int(code),
		"msg":       err.Error(),
		"retryable": code.Retryable(),
	}); err != nil {
		logrus.WithError(err).Errorln("render error")
	}
}
