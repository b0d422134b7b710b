package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/segmentio/ksuid"

	"github.com/ssargent/pkcore/pkg/codec"
	"github.com/ssargent/pkcore/pkg/game"
	"github.com/ssargent/pkcore/pkg/storage"
	"github.com/ssargent/pkcore/pkg/transfer"
)

const (
	generationHeader = "X-Record-Generation"
	contentTypeRaw   = "application/octet-stream"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.metrics.RecordHealthCheck(true)
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleListRecords lists the bank, or the records of one species when the
// species query parameter is set
func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	var (
		metas []storage.Meta
		err   error
	)
	start := time.Now()
	if q := r.URL.Query().Get("species"); q != "" {
		species, perr := strconv.ParseUint(q, 10, 16)
		if perr != nil {
			sendError(w, "Query parameter species must be a number", http.StatusBadRequest)
			return
		}
		metas, err = s.bank.BySpecies(uint16(species))
	} else {
		metas, err = s.bank.List()
	}
	s.metrics.RecordBankOperation("list", err == nil, time.Since(start))
	if err != nil {
		sendError(w, fmt.Sprintf("Failed to list records: %v", err), http.StatusInternalServerError)
		return
	}
	if metas == nil {
		metas = []storage.Meta{}
	}
	sendSuccess(w, metas)
}

// handlePutRecord banks the raw record in the body. The generation comes
// from the gen query parameter since record lengths are shared between
// formats.
func (s *Server) handlePutRecord(w http.ResponseWriter, r *http.Request) {
	gen, err := game.ParseGeneration(r.URL.Query().Get("gen"))
	if err != nil {
		sendError(w, "Query parameter gen must be 3-8 or lgpe", http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.config.MaxUploadSize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			sendError(w, "Request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		sendError(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	rec, err := codec.New(gen, body)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !rec.ChecksumValid() {
		sendError(w, "Record checksum does not match its contents", http.StatusBadRequest)
		return
	}

	start := time.Now()
	id, err := s.bank.Put(rec)
	s.metrics.RecordBankOperation("put", err == nil, time.Since(start))
	if err != nil {
		sendError(w, fmt.Sprintf("Failed to store record: %v", err), http.StatusInternalServerError)
		return
	}
	sendJSON(w, PutResponse{ID: id.String(), Generation: gen.String()}, http.StatusCreated)
}

// handleGetRecord returns a JSON summary, or the record bytes when
// format=raw is given or application/octet-stream is accepted. encrypted=true
// returns the stored form.
func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := recordID(w, r)
	if !ok {
		return
	}

	start := time.Now()
	rec, err := s.bank.Get(id)
	s.metrics.RecordBankOperation("get", err == nil, time.Since(start))
	if err != nil {
		sendBankError(w, err)
		return
	}

	if r.URL.Query().Get("format") == "raw" || r.Header.Get("Accept") == contentTypeRaw {
		if encrypted, _ := strconv.ParseBool(r.URL.Query().Get("encrypted")); encrypted {
			rec = rec.Clone()
			rec.Encrypt()
		}
		w.Header().Set("Content-Type", contentTypeRaw)
		w.Header().Set(generationHeader, rec.Generation().String())
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(rec.Bytes())
		return
	}

	sendSuccess(w, NewRecordView(id.String(), rec, s.tables))
}

func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := recordID(w, r)
	if !ok {
		return
	}

	start := time.Now()
	err := s.bank.Delete(id)
	s.metrics.RecordBankOperation("delete", err == nil, time.Since(start))
	if err != nil {
		sendBankError(w, err)
		return
	}
	sendSuccess(w, map[string]string{"message": "Record deleted successfully"})
}

// handleConvertRecord converts a banked record to the generation named by
// to. With store=true the result is banked and its id returned.
func (s *Server) handleConvertRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := recordID(w, r)
	if !ok {
		return
	}
	target, err := game.ParseGeneration(r.URL.Query().Get("to"))
	if err != nil {
		sendError(w, "Query parameter to must be 3-8 or lgpe", http.StatusBadRequest)
		return
	}
	store, _ := strconv.ParseBool(r.URL.Query().Get("store"))

	rec, err := s.bank.Get(id)
	if err != nil {
		sendBankError(w, err)
		return
	}

	out, rep, err := s.conv.ConvertWithReport(rec, target)
	s.metrics.RecordConversion(rec.Generation().String(), target.String(), rep, err == nil)
	if err != nil {
		if errors.Is(err, transfer.ErrDowngrade) || errors.Is(err, transfer.ErrNoRoute) {
			sendError(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		sendError(w, fmt.Sprintf("Conversion failed: %v", err), http.StatusInternalServerError)
		return
	}

	newID := ""
	if store {
		start := time.Now()
		banked, err := s.bank.Put(out)
		s.metrics.RecordBankOperation("put", err == nil, time.Since(start))
		if err != nil {
			sendError(w, fmt.Sprintf("Failed to store converted record: %v", err), http.StatusInternalServerError)
			return
		}
		newID = banked.String()
	}

	sendSuccess(w, newConvertResponse(newID, rep, NewRecordView(newID, out, s.tables)))
}

func recordID(w http.ResponseWriter, r *http.Request) (ksuid.KSUID, bool) {
	id, err := ksuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		sendError(w, "Invalid record id", http.StatusBadRequest)
		return ksuid.Nil, false
	}
	return id, true
}

func sendBankError(w http.ResponseWriter, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		sendError(w, "Record not found", http.StatusNotFound)
		return
	}
	sendError(w, fmt.Sprintf("Bank error: %v", err), http.StatusInternalServerError)
}
