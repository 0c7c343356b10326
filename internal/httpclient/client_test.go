package httpclient_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/plugmanager/plugmanager/internal/httpclient"
)

func TestHTTPClient(t *testing.T) {
	t.Parallel()
	RegisterFailHandler(Fail)
	RunSpecs(t, "HTTPClient Suite")
}

var _ = Describe("DefaultClient", func() {
	var (
		client     *httpclient.DefaultClient
		mockServer *httptest.Server
		ctx        context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		client = httpclient.NewDefaultClient(5 * time.Second)
	})

	AfterEach(func() {
		if mockServer != nil {
			mockServer.Close()
			mockServer = nil
		}
	})

	Describe("NewDefaultClient", func() {
		It("should use default timeout when zero is provided", func() {
			Expect(httpclient.NewDefaultClient(0)).NotTo(BeNil())
		})

		It("should accept options", func() {
			c := httpclient.NewDefaultClient(time.Second,
				httpclient.WithRateLimit(2),
				httpclient.WithDownloadTimeout(time.Minute))
			Expect(c).NotTo(BeNil())
		})
	})

	Describe("Get", func() {
		Context("Successful requests", func() {
			BeforeEach(func() {
				mockServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					Expect(r.Header.Get("User-Agent")).To(Equal("plugmanager/1.0"))
					Expect(r.Header.Get("Accept")).To(Equal("application/json"))

					w.WriteHeader(http.StatusOK)
					_, _ = w.Write([]byte(`[{"id":13932,"name":"WorldEdit"}]`))
				}))
			})

			It("should return the body", func() {
				data, err := client.Get(ctx, mockServer.URL)
				Expect(err).NotTo(HaveOccurred())
				Expect(string(data)).To(Equal(`[{"id":13932,"name":"WorldEdit"}]`))
			})
		})

		Context("HTTP error responses", func() {
			DescribeTable("should return an HTTPError",
				func(status int) {
					mockServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
						w.WriteHeader(status)
					}))

					_, err := client.Get(ctx, mockServer.URL)
					Expect(err).To(HaveOccurred())
					Expect(err.Error()).To(ContainSubstring(fmt.Sprintf("HTTP %d", status)))

					var httpErr *httpclient.HTTPError
					Expect(err).To(BeAssignableToTypeOf(httpErr))
				},
				Entry("not found", http.StatusNotFound),
				Entry("rate limited", http.StatusTooManyRequests),
				Entry("server error", http.StatusInternalServerError),
			)

			It("should accept other 2xx codes", func() {
				mockServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
					w.WriteHeader(http.StatusNonAuthoritativeInfo)
					_, _ = w.Write([]byte(`{}`))
				}))

				data, err := client.Get(ctx, mockServer.URL)
				Expect(err).NotTo(HaveOccurred())
				Expect(data).To(Equal([]byte(`{}`)))
			})
		})

		Context("Network errors", func() {
			It("should handle invalid URL", func() {
				_, err := client.Get(ctx, "://bad")
				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("failed to create request"))
			})

			It("should respect context cancellation", func() {
				mockServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
					w.WriteHeader(http.StatusOK)
				}))
				cancelled, cancel := context.WithCancel(ctx)
				cancel()

				_, err := client.Get(cancelled, mockServer.URL)
				Expect(err).To(HaveOccurred())
			})
		})

		Context("Response size limits", func() {
			It("should reject a response over the limit via Content-Length", func() {
				mockServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
					w.Header().Set("Content-Length", fmt.Sprintf("%d", httpclient.MaxResponseSize+1))
					w.WriteHeader(http.StatusOK)
				}))

				_, err := client.Get(ctx, mockServer.URL)
				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("exceeds maximum allowed size"))
			})

			It("should reject a response over the limit by actual content", func() {
				mockServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
					w.WriteHeader(http.StatusOK)
					_, _ = w.Write(bytes.Repeat([]byte("a"), httpclient.MaxResponseSize+10))
				}))

				_, err := client.Get(ctx, mockServer.URL)
				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("exceeds maximum allowed size"))
			})
		})
	})

	Describe("Download", func() {
		It("should stream the body into the writer", func() {
			payload := strings.Repeat("jar-bytes", 1024)
			mockServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.Header.Get("Accept")).To(Equal("*/*"))
				_, _ = w.Write([]byte(payload))
			}))

			var buf bytes.Buffer
			n, err := client.Download(ctx, mockServer.URL, &buf)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(int64(len(payload))))
			Expect(buf.String()).To(Equal(payload))
		})

		It("should not write anything on an error status", func() {
			mockServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte("cloudflare says no"))
			}))

			var buf bytes.Buffer
			_, err := client.Download(ctx, mockServer.URL, &buf)
			Expect(err).To(HaveOccurred())
			Expect(buf.Len()).To(BeZero())
		})
	})

	Describe("WithRateLimit", func() {
		It("should space requests out", func() {
			var hits atomic.Int32
			mockServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				hits.Add(1)
				_, _ = w.Write([]byte(`{}`))
			}))
			paced := httpclient.NewDefaultClient(time.Second, httpclient.WithRateLimit(10))

			start := time.Now()
			for range 3 {
				_, err := paced.Get(ctx, mockServer.URL)
				Expect(err).NotTo(HaveOccurred())
			}
			Expect(time.Since(start)).To(BeNumerically(">=", 150*time.Millisecond))
			Expect(hits.Load()).To(Equal(int32(3)))
		})

		It("should stop waiting when the context is done", func() {
			paced := httpclient.NewDefaultClient(time.Second, httpclient.WithRateLimit(0.001))
			mockServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{}`))
			}))
			_, err := paced.Get(ctx, mockServer.URL)
			Expect(err).NotTo(HaveOccurred())

			short, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
			defer cancel()
			_, err = paced.Get(short, mockServer.URL)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("rate limiter"))
		})
	})
})
