// Package server contains misc server utilities.
package server

import (
	"encoding/json"
	"go/types"
	"log"
	"net/http"
)

// FloatT is a struct with a single field, F64, used for json {'f64': value}
type FloatT struct {
	F64 float64 `json:"f64"`
}

// IntT is a struct with a single field, Int, used for json {'int': value}
type IntT struct {
	Int int `json:"int"`
}

// StrT is a struct with a single field, Str, used for json {'str': value}
type StrT struct {
	Str string `json:"str"`
}

// BoolT is a struct with a single field, Bool, used for json {'bool': value}
type BoolT struct {
	Bool bool `json:"bool"`
}

// HumanPayload is a struct that holds the basic types and can reply to
// HTTP requests in a human-friendly way.  Only the field indicated by T
// is populated.
type HumanPayload struct {
	// T holds the type of data actually contained in the payload
	T types.BasicKind

	// Float holds a float64
	Float float64

	// Int holds an int
	Int int

	// String holds a string
	String string

	// Bool holds a bool
	Bool bool
}

// EncodeAndRespond writes the payload to w as JSON, keyed by type,
// e.g. {"f64": 3.14}
func (hp HumanPayload) EncodeAndRespond(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	var err error
	enc := json.NewEncoder(w)
	switch hp.T {
	case types.Float64:
		err = enc.Encode(FloatT{F64: hp.Float})
	case types.Int:
		err = enc.Encode(IntT{Int: hp.Int})
	case types.String:
		err = enc.Encode(StrT{Str: hp.String})
	case types.Bool:
		err = enc.Encode(BoolT{Bool: hp.Bool})
	default:
		err = enc.Encode(nil)
	}
	if err != nil {
		log.Println("error encoding payload to json", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
