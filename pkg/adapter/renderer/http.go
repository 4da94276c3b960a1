package renderer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slidekit-lab/slidekit/pkg/domain/interfaces"
	"github.com/slidekit-lab/slidekit/pkg/domain/model/deck"
	"github.com/slidekit-lab/slidekit/pkg/domain/model/errs"
	"github.com/slidekit-lab/slidekit/pkg/domain/types"
	"github.com/slidekit-lab/slidekit/pkg/utils/errutil"
	"github.com/slidekit-lab/slidekit/pkg/utils/safe"
)

const pptxContentType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

// HTTPClient talks to the external slide rendering service: one POST to
// /generate yields a file ID, one GET to /download/{id} fetches the bytes.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

var _ interfaces.Renderer = &HTTPClient{}

type HTTPOption func(*HTTPClient)

func WithHTTPClient(c *http.Client) HTTPOption {
	return func(x *HTTPClient) {
		x.httpClient = c
	}
}

func NewHTTPClient(baseURL string, opts ...HTTPOption) *HTTPClient {
	x := &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

type generateRequest struct {
	Content  *deck.Outline `json:"content"`
	Template string        `json:"template"`
	Filename string        `json:"filename"`
}

type generateResponse struct {
	Success bool   `json:"success"`
	FileID  string `json:"file_id"`
	Message string `json:"message"`
}

func (x *HTTPClient) Render(ctx context.Context, outline *deck.Outline, template types.TemplateKey) (*deck.RenderResult, error) {
	eb := goerr.NewBuilder(
		goerr.TV(errutil.ServiceKey, "renderer"),
		goerr.TV(errutil.URLKey, x.baseURL),
	)

	filename := Filename(outline.Title, "pptx")
	body, err := json.Marshal(generateRequest{
		Content:  outline,
		Template: string(template),
		Filename: filename,
	})
	if err != nil {
		return nil, eb.Wrap(err, "failed to marshal render request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, x.baseURL+"/generate", bytes.NewReader(body))
	if err != nil {
		return nil, eb.Wrap(err, "failed to build render request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := x.httpClient.Do(req)
	if err != nil {
		return nil, eb.Wrap(errs.ErrRenderFailed, "renderer is unreachable", goerr.V("cause", err.Error()))
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode != http.StatusOK {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, eb.Wrap(errs.ErrRenderFailed, "renderer returned an error",
			goerr.TV(errutil.HTTPStatusKey, resp.StatusCode),
			goerr.V("body", string(text)))
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return nil, eb.Wrap(errs.ErrRenderFailed, "invalid renderer response", goerr.V("cause", err.Error()))
	}
	if !genResp.Success || genResp.FileID == "" {
		return nil, eb.Wrap(errs.ErrRenderFailed, "renderer rejected the outline", goerr.V("message", genResp.Message))
	}

	data, err := x.download(ctx, genResp.FileID)
	if err != nil {
		return nil, err
	}

	return &deck.RenderResult{
		Filename:    filename,
		ContentType: pptxContentType,
		Data:        data,
	}, nil
}

func (x *HTTPClient) download(ctx context.Context, fileID string) ([]byte, error) {
	url := fmt.Sprintf("%s/download/%s", x.baseURL, fileID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build download request", goerr.TV(errutil.URLKey, url))
	}

	resp, err := x.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(errs.ErrRenderFailed, "failed to download rendered file",
			goerr.TV(errutil.URLKey, url), goerr.V("cause", err.Error()))
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.Wrap(errs.ErrRenderFailed, "download returned an error",
			goerr.TV(errutil.URLKey, url),
			goerr.TV(errutil.HTTPStatusKey, resp.StatusCode))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(errs.ErrRenderFailed, "failed to read rendered file", goerr.V("cause", err.Error()))
	}
	return data, nil
}
