package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func newTestClient(srv *httptest.Server) *Client {
	return &Client{
		http:      srv.Client(),
		base:      srv.URL,
		apiKey:    "key",
		apiSecret: "secret",
		limiter:   rate.NewLimiter(rate.Inf, 1),
	}
}

func TestCandlesParsesMixedRows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/public/candlestick/BTC_KRW/24h", r.URL.Path)
		// rows are [ts, open, close, high, low, volume], values come
		// back as strings or numbers depending on the field
		_, _ = w.Write([]byte(`{"status":"0000","data":[
			[1700000000000,"100","103","110","90","12.5"],
			[1700086400000,101,104,111,91,13.1]
		]}`))
	}))
	defer srv.Close()

	cs, err := newTestClient(srv).Candles(context.Background(), "BTC")
	require.NoError(t, err)
	require.Len(t, cs, 2)
	assert.InDelta(t, 100.0, cs[0].Open, 1e-9)
	assert.InDelta(t, 103.0, cs[0].Close, 1e-9)
	assert.InDelta(t, 110.0, cs[0].High, 1e-9)
	assert.InDelta(t, 90.0, cs[0].Low, 1e-9)
	assert.InDelta(t, 111.0, cs[1].High, 1e-9)
}

func TestTickersSkipsDateField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"0000","data":{
			"BTC":{"closing_price":"100000000"},
			"ETH":{"closing_price":"5000000"},
			"date":"1700000000000"
		}}`))
	}))
	defer srv.Close()

	tickers, err := newTestClient(srv).Tickers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"BTC", "ETH"}, tickers)
}

func TestCurrentPricesOmitsMissingTickers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"0000","data":{
			"BTC":{"closing_price":"100000000"},
			"date":"1700000000000"
		}}`))
	}))
	defer srv.Close()

	prices, err := newTestClient(srv).CurrentPrices(context.Background(), []string{"BTC", "XRP"})
	require.NoError(t, err)
	assert.InDelta(t, 100000000.0, prices["BTC"], 1e-9)
	_, ok := prices["XRP"]
	assert.False(t, ok)
}

func TestOrderBookBestAsk(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"0000","data":{
			"asks":[{"price":"115","quantity":"3.5"},{"price":"116","quantity":"1.0"}]
		}}`))
	}))
	defer srv.Close()

	book, err := newTestClient(srv).OrderBook(context.Background(), "XRP")
	require.NoError(t, err)
	assert.InDelta(t, 115.0, book.BestAsk, 1e-9)
	require.Len(t, book.Asks, 2)
	assert.InDelta(t, 3.5, book.Asks[0].Quantity, 1e-9)
}

func TestMarketBuySignsAndSumsFills(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "/trade/market_buy", r.URL.Path)
		assert.Equal(t, "/trade/market_buy", r.PostForm.Get("endpoint"))
		assert.Equal(t, "XRP", r.PostForm.Get("order_currency"))
		assert.Equal(t, "KRW", r.PostForm.Get("payment_currency"))
		assert.NotEmpty(t, r.Header.Get("Api-Key"))
		assert.NotEmpty(t, r.Header.Get("Api-Sign"))
		assert.NotEmpty(t, r.Header.Get("Api-Nonce"))
		_, _ = w.Write([]byte(`{"status":"0000","order_id":"1428",
			"data":[{"cont_id":"15313","units":"500.0","price":"115"},
			        {"cont_id":"15314","units":"369.5652","price":"115"}]}`))
	}))
	defer srv.Close()

	res, err := newTestClient(srv).MarketBuy(context.Background(), "XRP", 869.5652)
	require.NoError(t, err)
	assert.Equal(t, "1428", res.OrderID)
	assert.InDelta(t, 869.5652, res.Units, 1e-6)
}

func TestOrderRejectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"5600","message":"주문수량 최소단위 미달"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).MarketSell(context.Background(), "XRP", 0.001)
	assert.Error(t, err)
}

func TestBalanceFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "XRP", r.PostForm.Get("currency"))
		_, _ = w.Write([]byte(`{"status":"0000","data":{
			"available_xrp":"500.5","in_use_xrp":"10.0",
			"available_krw":"250000","total_krw":"260000"
		}}`))
	}))
	defer srv.Close()

	bal, err := newTestClient(srv).Balance(context.Background(), "XRP")
	require.NoError(t, err)
	assert.InDelta(t, 500.5, bal.Available, 1e-9)
	assert.InDelta(t, 10.0, bal.InUse, 1e-9)
	assert.InDelta(t, 250000.0, bal.KRWAvailable, 1e-9)
}

func TestSignIsDeterministic(t *testing.T) {
	c := &Client{apiSecret: "secret"}
	a := c.sign("/trade/market_buy", "endpoint=x&units=1", "1700000000000")
	b := c.sign("/trade/market_buy", "endpoint=x&units=1", "1700000000000")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c.sign("/trade/market_buy", "endpoint=x&units=1", "1700000000001"))
}

func TestClientTimeoutConfigured(t *testing.T) {
	c := NewClient("k", "s")
	assert.Equal(t, 10*time.Second, c.http.Timeout)
}
