package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Currencies reported against the requested base.
var targetCurrencies = []string{"USD", "EUR", "GBP", "JPY", "AUD", "CAD"}

// ExchangeController is a stateless pass-through to the exchangerate-api
// service. Cache is optional; when present, responses are reused per base
// currency for an hour.
type ExchangeController struct {
	HTTP    *http.Client
	BaseURL string
	APIKey  string
	Cache   *redis.Client
}

type exchangeRateAPIResponse struct {
	Result            string             `json:"result"`
	TimeLastUpdateUTC string             `json:"time_last_update_utc"`
	ConversionRates   map[string]float64 `json:"conversion_rates"`
	ErrorType         string             `json:"error-type"`
}

func (ec *ExchangeController) GetRates(c *gin.Context) {
	base := c.Query("BASE_CURRENCY")
	if base == "" {
		base = "INR"
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	cacheKey := "exchange:" + base
	if ec.Cache != nil {
		if cached, err := ec.Cache.Get(ctx, cacheKey).Bytes(); err == nil {
			c.Data(http.StatusOK, "application/json; charset=utf-8", cached)
			return
		}
	}

	url := fmt.Sprintf("%s/%s/latest/%s", strings.TrimSuffix(ec.BaseURL, "/"), ec.APIKey, base)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Error().Err(err).Msg("exchange rate request build failed")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Failed to fetch exchange rates from external API."})
		return
	}

	resp, err := ec.HTTP.Do(req)
	if err != nil {
		log.Error().Err(err).Msg("exchange rate fetch failed")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Failed to fetch exchange rates from external API."})
		return
	}
	defer resp.Body.Close()

	var data exchangeRateAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		log.Error().Err(err).Msg("exchange rate decode failed")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Failed to fetch exchange rates from external API."})
		return
	}

	if data.Result != "success" || data.ConversionRates == nil {
		log.Error().
			Str("result", data.Result).
			Str("errorType", data.ErrorType).
			Msg("exchange rate api reported an error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"msg":      "Failed to fetch exchange rates from external API.",
			"apiError": data.Result,
		})
		return
	}

	rates := make([]gin.H, 0, len(targetCurrencies))
	for _, code := range targetCurrencies {
		rate, ok := data.ConversionRates[code]
		if !ok {
			continue
		}
		rounded, _ := decimal.NewFromFloat(rate).Round(4).Float64()
		rates = append(rates, gin.H{"currency": code, "rate": rounded})
	}

	payload := gin.H{
		"baseCurrency": base,
		"date":         data.TimeLastUpdateUTC,
		"rates":        rates,
		"msg":          "Currency exchange rates fetched successfully.",
	}

	if ec.Cache != nil {
		if body, err := json.Marshal(payload); err == nil {
			if err := ec.Cache.Set(ctx, cacheKey, body, time.Hour).Err(); err != nil {
				log.Warn().Err(err).Msg("exchange rate cache write failed")
			}
		}
	}

	c.JSON(http.StatusOK, payload)
}
