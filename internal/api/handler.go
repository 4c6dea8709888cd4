package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shouni/gemini-studio-kit/pkg/domain"
	"github.com/shouni/gemini-studio-kit/pkg/encoder"
	"github.com/shouni/gemini-studio-kit/pkg/prompt"
	"github.com/shouni/gemini-studio-kit/pkg/studio"
)

const defaultMaxUploadBytes = 20 << 20

// Handler は各操作を HTTP で公開します。
type Handler struct {
	studio         *studio.Studio
	loader         *encoder.Loader
	maxUploadBytes int64
	operations     map[domain.OperationKind]operationFunc
}

// Option は Handler の設定です。
type Option func(*Handler)

// WithLoader は <field>_url で指定された画像の取得に使う Loader を設定します。
// 設定しない場合、URL 指定は data URL のみ受け付けます。
func WithLoader(l *encoder.Loader) Option {
	return func(h *Handler) { h.loader = l }
}

// WithMaxUploadBytes はリクエストボディの上限を設定します。
func WithMaxUploadBytes(n int64) Option {
	return func(h *Handler) {
		if n > 0 {
			h.maxUploadBytes = n
		}
	}
}

// NewHandler は依存関係を注入して Handler を初期化します。
func NewHandler(s *studio.Studio, opts ...Option) (*Handler, error) {
	if s == nil {
		return nil, fmt.Errorf("studio is required")
	}
	h := &Handler{
		studio:         s,
		maxUploadBytes: defaultMaxUploadBytes,
		operations:     operations(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// RegisterRoutes はルートを登録します。
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/healthz", h.handleHealth).Methods(http.MethodGet)

	v1 := r.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/options", h.handleOptions).Methods(http.MethodGet)
	v1.HandleFunc("/{operation}", h.handleOperation).Methods(http.MethodPost)
}

// NewRouter は Handler のルートを登録した Router を返します。
func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleOptions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, prompt.Options())
}

func (h *Handler) handleOperation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	op := domain.OperationKind(mux.Vars(r)["operation"])

	run, ok := h.operations[op]
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody{Error: fmt.Sprintf("unknown operation %q", op)})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		if !errors.Is(err, http.ErrNotMultipart) {
			writeJSON(w, requestStatus(err), errorBody{Error: "invalid form: " + err.Error(), Operation: op})
			return
		}
		if err := r.ParseForm(); err != nil {
			writeJSON(w, requestStatus(err), errorBody{Error: "invalid form: " + err.Error(), Operation: op})
			return
		}
	}

	f := &form{r: r, h: h, op: op}
	res, err := run(ctx, h.studio, f)
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, newResultBody(res))
}

func requestStatus(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

type resultBody struct {
	Kind     domain.ResultKind `json:"kind"`
	MIMEType string            `json:"mime_type,omitempty"`
	Data     string            `json:"data,omitempty"`
	Text     string            `json:"text,omitempty"`
}

func newResultBody(res domain.OperationResult) resultBody {
	if res.Kind == domain.ResultImage {
		return resultBody{Kind: res.Kind, MIMEType: res.MIMEType, Data: res.Base64}
	}
	return resultBody{Kind: res.Kind, Text: res.Text}
}

type fieldBody struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

type errorBody struct {
	Error     string               `json:"error"`
	Operation domain.OperationKind `json:"operation,omitempty"`
	Field     string               `json:"field,omitempty"`
	Fields    []fieldBody          `json:"fields,omitempty"`
	Retryable bool                 `json:"retryable"`
}

// writeError はエラーの種類をステータスコードに対応付けて返します。
func writeError(w http.ResponseWriter, r *http.Request, op domain.OperationKind, err error) {
	body := errorBody{Error: err.Error(), Operation: op, Retryable: domain.IsRetryable(err)}

	var (
		missing    *domain.MissingInputError
		validation *prompt.ValidationError
		encoding   *domain.EncodingError
		remote     *domain.RemoteServiceError
		noImage    *domain.NoImageReturnedError
		empty      *domain.EmptyResponseError
	)
	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &missing):
		status = http.StatusBadRequest
		body.Field = missing.Field
	case errors.As(err, &validation):
		status = http.StatusBadRequest
		for _, fe := range validation.Fields {
			body.Fields = append(body.Fields, fieldBody{Field: fe.Field, Reason: fe.Reason})
		}
	case errors.Is(err, prompt.ErrUnknownPreset), errors.As(err, &encoding):
		status = http.StatusBadRequest
	case errors.As(err, &noImage), errors.As(err, &empty):
		status = http.StatusUnprocessableEntity
	case errors.As(err, &remote):
		status = http.StatusBadGateway
	}

	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "リクエストの処理に失敗しました", "operation", op, "status", status, "error", err)
	} else {
		slog.InfoContext(r.Context(), "リクエストを処理できませんでした", "operation", op, "status", status, "error", err)
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("レスポンスの書き込みに失敗しました", "error", err)
	}
}
