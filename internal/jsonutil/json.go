package jsonutil

import (
	"encoding/json"
	"net/http"
)

// WriteJSON marshals data and writes it to w with the given status code and
// optional extra headers. It exists for code that runs outside the application
// struct, such as middleware.
func WriteJSON(w http.ResponseWriter, status int, data any, headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}

	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)

	return nil
}
