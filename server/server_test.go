package server_test

import (
	"encoding/json"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/msaldanha/taskflow/config"
	"github.com/msaldanha/taskflow/server"
)

var _ = Describe("Server", func() {
	var dir string
	var cfg config.Config

	BeforeEach(func() {
		var er error
		dir, er = os.MkdirTemp("", "taskflow-server")
		Expect(er).To(BeNil())
		cfg = config.Default()
		cfg.DB = filepath.Join(dir, "taskflow.db")
	})

	AfterEach(func() {
		_ = os.RemoveAll(dir)
	})

	It("Should persist cache entries across restarts", func() {
		s, er := server.NewServer(server.Options{Config: cfg, Logger: zap.NewNop()})
		Expect(er).To(BeNil())
		Expect(s.Cache().Set("greeting", json.RawMessage(`"hola"`))).To(Succeed())
		Expect(s.Close()).To(Succeed())

		s, er = server.NewServer(server.Options{Config: cfg, Logger: zap.NewNop()})
		Expect(er).To(BeNil())
		defer s.Close()

		v, ok := s.Cache().Get("greeting").Get()
		Expect(ok).To(BeTrue())
		Expect(string(v)).To(Equal(`"hola"`))
	})

	It("Should keep error fallbacks apart from the cache", func() {
		s, er := server.NewServer(server.Options{Config: cfg, Logger: zap.NewNop()})
		Expect(er).To(BeNil())
		defer s.Close()

		logs, er := s.Reporter().FallbackLogs()
		Expect(er).To(BeNil())
		Expect(logs).To(BeEmpty())
		keys, er := s.Cache().Keys()
		Expect(er).To(BeNil())
		Expect(keys).To(BeEmpty())
	})

	It("Should fail when the database cannot be opened", func() {
		cfg.DB = filepath.Join(dir, "missing", "taskflow.db")
		_, er := server.NewServer(server.Options{Config: cfg, Logger: zap.NewNop()})
		Expect(er).NotTo(BeNil())
	})
})
