package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"tradeline-calculator/config"
	"tradeline-calculator/domain"
	"tradeline-calculator/repository"
	"tradeline-calculator/service"
)

var _ = Describe("utilization handler", func() {
	var (
		server *Server
		router http.Handler
	)

	newServer := func(rateLimit int, trustProxy bool) {
		cfg := &config.Config{
			Service: &config.ServiceConfig{
				AllowedOrigins:    []string{"*"},
				RateLimit:         rateLimit,
				RateWindow:        time.Minute,
				TrustProxyHeaders: trustProxy,
			},
			Cache: &config.CacheConfig{TTL: time.Minute},
		}
		svc := service.NewUtilizationService(
			repository.NewCalculationRepositoryMemory(10),
			repository.NewMemoryCache(),
			cfg.Cache.TTL,
		)
		handler := NewUtilizationHandler(svc, service.NewShareService(nil, nil))
		server = NewServer(cfg, handler, nil)
		router = server.Router()
	}

	post := func(path string, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		newServer(0, false)
	})

	AfterEach(func() {
		server.limiter.Stop()
	})

	Context("calculate", func() {
		It("computes the result for a complete form", func() {
			w := post("/api/v1/utilization/calculate",
				`{"current_balance":"18,000","current_credit_limit":"18,000","target_mode":"standard"}`)
			Expect(w.Code).To(Equal(http.StatusOK))

			var out domain.CalculationOutcome
			Expect(json.Unmarshal(w.Body.Bytes(), &out)).To(Succeed())
			Expect(out.Status).To(Equal(domain.StatusComputed))
			Expect(out.Target).To(Equal(30.0))
			Expect(out.Result).NotTo(BeNil())
			Expect(out.Result.CurrentUtilizationPercent).To(BeNumerically("~", 100.0, 1e-9))
			Expect(out.Result.RequiredTotalCreditLimit).To(BeNumerically("~", 60000.0, 1e-6))
			Expect(out.Result.AdditionalCreditNeeded).To(BeNumerically("~", 42000.0, 1e-6))
			Expect(out.Result.AlreadyAtOrBelowTarget).To(BeFalse())
			Expect(out.Band).To(Equal(domain.BandSevere))
			Expect(out.Display.AdditionalCreditNeeded).To(Equal("$42,000"))
		})

		It("uses the optimal target by default", func() {
			w := post("/api/v1/utilization/calculate",
				`{"current_balance":"18000","current_credit_limit":"18000"}`)
			Expect(w.Code).To(Equal(http.StatusOK))

			var out domain.CalculationOutcome
			Expect(json.Unmarshal(w.Body.Bytes(), &out)).To(Succeed())
			Expect(out.Result.AdditionalCreditNeeded).To(BeNumerically("~", 162000.0, 1e-6))
		})

		It("reports awaiting_input for an incomplete form", func() {
			w := post("/api/v1/utilization/calculate",
				`{"current_balance":"0","current_credit_limit":"18000","target_mode":"standard"}`)
			Expect(w.Code).To(Equal(http.StatusOK))

			var out domain.CalculationOutcome
			Expect(json.Unmarshal(w.Body.Bytes(), &out)).To(Succeed())
			Expect(out.Status).To(Equal(domain.StatusAwaitingInput))
			Expect(out.Result).To(BeNil())
		})

		It("reports awaiting_input when the result would overflow", func() {
			bodies := []string{
				`{"current_balance":"1e308","current_credit_limit":"0.0000001"}`,
				`{"current_balance":"18000","current_credit_limit":"18000","target_mode":"custom","custom_target":"1e-320"}`,
			}
			for _, body := range bodies {
				w := post("/api/v1/utilization/calculate", body)
				Expect(w.Code).To(Equal(http.StatusOK))

				var out domain.CalculationOutcome
				Expect(json.Unmarshal(w.Body.Bytes(), &out)).To(Succeed())
				Expect(out.Status).To(Equal(domain.StatusAwaitingInput))
				Expect(out.Result).To(BeNil())
			}

			req := httptest.NewRequest(http.MethodGet, "/api/v1/utilization/history", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			Expect(w.Code).To(Equal(http.StatusOK))
		})

		It("rejects malformed json", func() {
			w := post("/api/v1/utilization/calculate", `{invalid-json}`)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("rejects an unknown target mode", func() {
			w := post("/api/v1/utilization/calculate",
				`{"current_balance":"1","current_credit_limit":"1","target_mode":"aggressive"}`)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(w.Body.String()).To(ContainSubstring("TargetMode must be one of"))
		})

		It("only accepts POST", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/utilization/calculate", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			Expect(w.Code).To(Equal(http.StatusMethodNotAllowed))
		})
	})

	Context("share", func() {
		It("returns the share sentence", func() {
			w := post("/api/v1/utilization/share",
				`{"current_balance":"18,000","current_credit_limit":"18,000","target_mode":"standard"}`)
			Expect(w.Code).To(Equal(http.StatusOK))

			var out shareResponse
			Expect(json.Unmarshal(w.Body.Bytes(), &out)).To(Succeed())
			Expect(out.Text).To(Equal("I need an AU tradeline with $42,000 credit limit to reach 30% utilization!"))
		})

		It("answers conflict when the target is already met", func() {
			w := post("/api/v1/utilization/share",
				`{"current_balance":"2000","current_credit_limit":"10000","target_mode":"standard"}`)
			Expect(w.Code).To(Equal(http.StatusConflict))
		})
	})

	Context("export", func() {
		It("downloads the json export", func() {
			w := post("/api/v1/utilization/export",
				`{"current_balance":"18000","current_credit_limit":"18000","target_mode":"custom","custom_target":"30"}`)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Content-Type")).To(Equal("application/json"))
			Expect(w.Header().Get("Content-Disposition")).To(Equal(`attachment; filename="au-tradeline-calculation.json"`))

			var rec domain.ExportRecord
			Expect(json.Unmarshal(w.Body.Bytes(), &rec)).To(Succeed())
			Expect(rec.CurrentUtilization).To(Equal("100.0%"))
			Expect(rec.AdditionalCreditNeeded).To(Equal("$42,000"))
			Expect(rec.TargetUtilization).To(Equal("30%"))
		})

		It("downloads the yaml export", func() {
			w := post("/api/v1/utilization/export?format=yaml",
				`{"current_balance":"18000","current_credit_limit":"18000"}`)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Content-Disposition")).To(ContainSubstring("au-tradeline-calculation.yaml"))
			Expect(w.Body.String()).To(ContainSubstring("currentUtilization: 100.0%"))
		})

		It("rejects an unknown format", func() {
			w := post("/api/v1/utilization/export?format=xml",
				`{"current_balance":"18000","current_credit_limit":"18000"}`)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("answers conflict while awaiting input", func() {
			w := post("/api/v1/utilization/export", `{"current_balance":"18000"}`)
			Expect(w.Code).To(Equal(http.StatusConflict))
		})
	})

	Context("history", func() {
		It("lists computed calculations", func() {
			post("/api/v1/utilization/calculate", `{"current_balance":"1","current_credit_limit":"2"}`)
			post("/api/v1/utilization/calculate", `{"current_balance":"","current_credit_limit":"2"}`)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/utilization/history", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			Expect(w.Code).To(Equal(http.StatusOK))

			var out historyResponse
			Expect(json.Unmarshal(w.Body.Bytes(), &out)).To(Succeed())
			Expect(out.Records).To(HaveLen(1))
			Expect(out.Records[0].Balance).To(Equal(1.0))
		})
	})

	Context("health", func() {
		It("answers ok", func() {
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(Equal("ok"))
		})
	})

	Context("rate limiting", func() {
		BeforeEach(func() {
			server.limiter.Stop()
			newServer(2, false)
		})

		It("rejects requests over the allowance", func() {
			body := `{"current_balance":"1","current_credit_limit":"2"}`
			Expect(post("/api/v1/utilization/calculate", body).Code).To(Equal(http.StatusOK))
			Expect(post("/api/v1/utilization/calculate", body).Code).To(Equal(http.StatusOK))
			Expect(post("/api/v1/utilization/calculate", body).Code).To(Equal(http.StatusTooManyRequests))
		})

		It("ignores forwarded client headers by default", func() {
			body := `{"current_balance":"1","current_credit_limit":"2"}`
			rejected := 0
			for i := 0; i < 5; i++ {
				req := httptest.NewRequest(http.MethodPost, "/api/v1/utilization/calculate", bytes.NewBufferString(body))
				req.Header.Set("X-Real-IP", fmt.Sprintf("10.0.0.%d", i+1))
				req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.1.%d", i+1))
				w := httptest.NewRecorder()
				router.ServeHTTP(w, req)
				if w.Code == http.StatusTooManyRequests {
					rejected++
				}
			}
			Expect(rejected).To(Equal(3))
		})

		It("keys clients by forwarded headers when trusted", func() {
			server.limiter.Stop()
			newServer(2, true)

			body := `{"current_balance":"1","current_credit_limit":"2"}`
			for i := 0; i < 3; i++ {
				req := httptest.NewRequest(http.MethodPost, "/api/v1/utilization/calculate", bytes.NewBufferString(body))
				req.Header.Set("X-Real-IP", "10.0.0.1")
				w := httptest.NewRecorder()
				router.ServeHTTP(w, req)
				if i < 2 {
					Expect(w.Code).To(Equal(http.StatusOK))
				} else {
					Expect(w.Code).To(Equal(http.StatusTooManyRequests))
				}
			}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/utilization/calculate", bytes.NewBufferString(body))
			req.Header.Set("X-Real-IP", "10.0.0.2")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			Expect(w.Code).To(Equal(http.StatusOK))
		})

		It("does not limit health checks", func() {
			for i := 0; i < 5; i++ {
				req := httptest.NewRequest(http.MethodGet, "/health", nil)
				w := httptest.NewRecorder()
				router.ServeHTTP(w, req)
				Expect(w.Code).To(Equal(http.StatusOK))
			}
		})
	})
})
