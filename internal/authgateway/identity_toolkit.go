package authgateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"skillup_backend/internal/config"
	"skillup_backend/internal/util"
	"skillup_backend/pkg/logger"
	"skillup_backend/pkg/tracing"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// IdentityToolkit 通过 REST 接口对接托管认证服务（accounts:signInWithPassword 等）
type IdentityToolkit struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewIdentityToolkit(cfg config.AuthConfig) *IdentityToolkit {
	return &IdentityToolkit{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

func (g *IdentityToolkit) Name() string {
	return util.AuthProviderIdentityToolkit
}

type passwordRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type accountResponse struct {
	LocalID     string `json:"localId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	IDToken     string `json:"idToken"`
}

type oobRequest struct {
	RequestType string `json:"requestType"`
	Email       string `json:"email"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (g *IdentityToolkit) SignIn(ctx context.Context, email, password string) (*Identity, error) {
	var resp accountResponse
	if err := g.call(ctx, "signInWithPassword", passwordRequest{email, password, true}, &resp); err != nil {
		return nil, err
	}
	return g.identity(resp, email), nil
}

func (g *IdentityToolkit) SignUp(ctx context.Context, email, password string) (*Identity, error) {
	var resp accountResponse
	if err := g.call(ctx, "signUp", passwordRequest{email, password, true}, &resp); err != nil {
		return nil, err
	}
	return g.identity(resp, email), nil
}

func (g *IdentityToolkit) SendPasswordReset(ctx context.Context, email string) error {
	return g.call(ctx, "sendOobCode", oobRequest{RequestType: "PASSWORD_RESET", Email: email}, nil)
}

func (g *IdentityToolkit) identity(resp accountResponse, email string) *Identity {
	if resp.Email == "" {
		resp.Email = email
	}
	return &Identity{
		UID:         resp.LocalID,
		Email:       resp.Email,
		DisplayName: resp.DisplayName,
		Provider:    g.Name(),
	}
}

// call 单次请求，不重试
func (g *IdentityToolkit) call(ctx context.Context, method string, body, out interface{}) (err error) {
	ctx, span := tracing.Start(ctx, "identitytoolkit."+method, attribute.String("auth.method", method))
	defer func() { tracing.End(span, err) }()

	jsonData, err := json.Marshal(body)
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/accounts:%s?key=%s", g.baseURL, method, url.QueryEscape(g.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		logger.Log.Warn("Identity toolkit request failed", zap.String("method", method), zap.Error(err))
		return &AuthError{Kind: KindUnavailable, Message: MsgNetworkError, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &AuthError{Kind: KindUnavailable, Message: MsgNetworkError, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if jsonErr := json.Unmarshal(data, &errResp); jsonErr != nil || errResp.Error.Message == "" {
			logger.Log.Warn("Identity toolkit returned unexpected response",
				zap.String("method", method),
				zap.Int("status", resp.StatusCode))
			return &AuthError{Kind: KindUnavailable, Message: MsgNetworkError,
				Err: fmt.Errorf("identity toolkit %s: status %d", method, resp.StatusCode)}
		}
		return remoteAuthError(errResp.Error.Message)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &AuthError{Kind: KindUnavailable, Message: MsgNetworkError, Err: err}
	}
	return nil
}
