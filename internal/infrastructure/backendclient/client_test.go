package backendclient

import (
	"context"
	"net"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"
	"go.uber.org/zap"

	"wallet_tracker/internal/domain/entity"
)

const testToken = "tok-123"

type recorded struct {
	method string
	path   string
	auth   string
	body   string
}

// newTestClient serves handler on an in-memory listener and returns a client wired to it.
func newTestClient(t *testing.T, handler fasthttp.RequestHandler) (*Client, *[]recorded) {
	t.Helper()
	ln := fasthttputil.NewInmemoryListener()
	var calls []recorded
	srv := &fasthttp.Server{Handler: func(ctx *fasthttp.RequestCtx) {
		calls = append(calls, recorded{
			method: string(ctx.Method()),
			path:   string(ctx.Path()),
			auth:   string(ctx.Request.Header.Peek(fasthttp.HeaderAuthorization)),
			body:   string(ctx.PostBody()),
		})
		handler(ctx)
	}}
	go func() { _ = srv.Serve(ln) }()
	t.Cleanup(func() { _ = ln.Close() })

	hc := &fasthttp.Client{Dial: func(string) (net.Conn, error) { return ln.Dial() }}
	c := New("http://backend.test/", 2*time.Second, zap.NewNop(), WithHTTPClient(hc))
	return c, &calls
}

func jsonReply(ctx *fasthttp.RequestCtx, status int, body string) {
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBodyString(body)
}

func TestLogin(t *testing.T) {
	c, calls := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		jsonReply(ctx, fasthttp.StatusOK, `{"token":"`+testToken+`"}`)
	})

	token, err := c.Login(context.Background(), "me@example.com", "secret")

	require.NoError(t, err)
	assert.Equal(t, testToken, token)
	require.Len(t, *calls, 1)
	assert.Equal(t, "POST", (*calls)[0].method)
	assert.Equal(t, "/auth/login", (*calls)[0].path)
	assert.Empty(t, (*calls)[0].auth)
	assert.JSONEq(t, `{"email":"me@example.com","password":"secret"}`, (*calls)[0].body)
}

func TestLogin_NestedToken(t *testing.T) {
	c, _ := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		jsonReply(ctx, fasthttp.StatusOK, `{"data":{"token":"nested"}}`)
	})

	token, err := c.Login(context.Background(), "a", "b")
	require.NoError(t, err)
	assert.Equal(t, "nested", token)
}

func TestLogin_Rejected(t *testing.T) {
	c, _ := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		jsonReply(ctx, fasthttp.StatusUnauthorized, `{"message":"bad credentials"}`)
	})

	_, err := c.Login(context.Background(), "a", "b")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.StatusCode)
	assert.Contains(t, apiErr.Error(), "bad credentials")
}

func TestLogin_EmptyToken(t *testing.T) {
	c, _ := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		jsonReply(ctx, fasthttp.StatusOK, `{}`)
	})

	_, err := c.Login(context.Background(), "a", "b")
	assert.ErrorContains(t, err, "no token")
}

func TestVerify(t *testing.T) {
	c, calls := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		if string(ctx.Request.Header.Peek(fasthttp.HeaderAuthorization)) == "Bearer "+testToken {
			ctx.SetStatusCode(fasthttp.StatusNoContent)
			return
		}
		ctx.SetStatusCode(fasthttp.StatusUnauthorized)
	})

	require.NoError(t, c.Verify(context.Background(), testToken))
	assert.ErrorIs(t, c.Verify(context.Background(), "stale"), ErrUnauthorized)
	assert.Equal(t, "/auth/verify", (*calls)[0].path)
}

func TestListWallets_BothShapes(t *testing.T) {
	bodies := []string{
		`[{"address":"0xabc","chain":"ETH","label":"main"}]`,
		`{"wallets":[{"address":"0xabc","chain":"ETH","label":"main"}]}`,
	}
	for _, body := range bodies {
		c, calls := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
			jsonReply(ctx, fasthttp.StatusOK, body)
		})

		wallets, err := c.ListWallets(context.Background(), testToken)

		require.NoError(t, err)
		assert.Equal(t, []entity.Wallet{{Address: "0xabc", Chain: "ETH", Label: "main"}}, wallets)
		assert.Equal(t, "Bearer "+testToken, (*calls)[0].auth)
	}
}

func TestAddAndRemoveWallet(t *testing.T) {
	c, calls := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		switch string(ctx.Method()) {
		case fasthttp.MethodPost:
			jsonReply(ctx, fasthttp.StatusCreated, `{"address":"0xabc","chain":"ETH","label":"server label"}`)
		case fasthttp.MethodDelete:
			ctx.SetStatusCode(fasthttp.StatusNoContent)
		}
	})

	created, err := c.AddWallet(context.Background(), testToken, entity.Wallet{Address: "0xabc", Chain: "ETH"})
	require.NoError(t, err)
	assert.Equal(t, "server label", created.Label)

	require.NoError(t, c.RemoveWallet(context.Background(), testToken, "0xabc"))
	require.Len(t, *calls, 2)
	assert.Equal(t, "DELETE", (*calls)[1].method)
	assert.Equal(t, "/wallets/0xabc", (*calls)[1].path)
}

func TestRemoveWallet_NotFound(t *testing.T) {
	c, _ := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		jsonReply(ctx, fasthttp.StatusNotFound, `{"error":"wallet not tracked"}`)
	})

	err := c.RemoveWallet(context.Background(), testToken, "0xabc")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrUnauthorized)
}

func TestGetHoldings_DuckTypedNumbers(t *testing.T) {
	c, calls := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		jsonReply(ctx, fasthttp.StatusOK, `[
			{"id":"usdc","symbol":"USDC","chain":"ETH","amount":"100.5","priceUsd":1,"valueUsd":"100.50","priceChange24h":0.001},
			{"id":"arb","symbol":"ARB","chain":"ARB","walletAddress":"0xother","amount":12,"valueUsd":null,"priceChange24h":"n/a"}
		]`)
	})

	holdings, err := c.GetHoldings(context.Background(), testToken, "0xabc")

	require.NoError(t, err)
	require.Len(t, holdings, 2)
	assert.Equal(t, "/wallets/0xabc/tokens", (*calls)[0].path)

	assert.Equal(t, "0xabc", holdings[0].WalletAddress, "missing owner is filled in")
	assert.Equal(t, "100.5", holdings[0].ValueUSD.String())
	assert.True(t, holdings[0].PriceUSD.Valid())

	assert.Equal(t, "0xother", holdings[1].WalletAddress)
	assert.False(t, holdings[1].ValueUSD.Valid())
	assert.False(t, holdings[1].Change24h.Valid())
	assert.Equal(t, "12", holdings[1].Quantity.String())
}

func TestGetHoldings_LooseTimestamps(t *testing.T) {
	c, _ := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		jsonReply(ctx, fasthttp.StatusOK, `[
			{"symbol":"USDC","valueUsd":"1","lastUpdated":1714557600000},
			{"symbol":"SOL","valueUsd":"2"},
			{"symbol":"ARB","valueUsd":"3","lastUpdated":""},
			{"symbol":"ETH","valueUsd":"4","lastUpdated":"2024-05-01T10:00:00Z"}
		]`)
	})

	holdings, err := c.GetHoldings(context.Background(), testToken, "0xabc")

	require.NoError(t, err)
	require.Len(t, holdings, 4)
	at, ok := holdings[0].LastUpdated.Time()
	require.True(t, ok)
	assert.Equal(t, int64(1714557600), at.Unix())
	assert.False(t, holdings[1].LastUpdated.Valid())
	assert.False(t, holdings[2].LastUpdated.Valid())
	assert.True(t, holdings[3].LastUpdated.Valid())
}

func TestErrorMessage_TruncatesOnRuneBoundary(t *testing.T) {
	body := []byte(strings.Repeat("ошибка ", 60))

	msg := errorMessage(body)

	assert.True(t, utf8.ValidString(msg))
	assert.LessOrEqual(t, len(msg), maxErrorMessageLen)
	assert.True(t, strings.HasPrefix(string(body), msg))
}

func TestGetHoldings_WrappedAndEmpty(t *testing.T) {
	c, _ := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		if strings.Contains(string(ctx.Path()), "empty") {
			jsonReply(ctx, fasthttp.StatusOK, `{}`)
			return
		}
		jsonReply(ctx, fasthttp.StatusOK, `{"tokens":[{"id":"sol","symbol":"SOL","chain":"SOL","valueUsd":"5"}]}`)
	})

	holdings, err := c.GetHoldings(context.Background(), testToken, "wallet1")
	require.NoError(t, err)
	require.Len(t, holdings, 1)
	assert.Equal(t, "SOL", holdings[0].Symbol)

	empty, err := c.GetHoldings(context.Background(), testToken, "empty")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestGetHoldings_BadBody(t *testing.T) {
	c, _ := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		jsonReply(ctx, fasthttp.StatusOK, `<html>oops</html>`)
	})

	_, err := c.GetHoldings(context.Background(), testToken, "0xabc")
	assert.ErrorContains(t, err, "failed to decode holdings")
}

func TestServerError(t *testing.T) {
	c, _ := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusBadGateway)
		ctx.SetBodyString("upstream down")
	})

	_, err := c.ListWallets(context.Background(), testToken)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 502, apiErr.StatusCode)
	assert.Equal(t, "upstream down", apiErr.Message)
	assert.NotErrorIs(t, err, ErrUnauthorized)
}

func TestCancelledContext(t *testing.T) {
	c, calls := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusOK)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Verify(ctx, testToken)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, *calls)
}
