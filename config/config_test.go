package config_test

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/msaldanha/taskflow/config"
)

var envVars = []string{
	"TASKFLOW_ENV", "TASKFLOW_ADDR", "TASKFLOW_DB", "TASKFLOW_CACHE_TTL", "TASKFLOW_CACHE_PREFIX",
	"TASKFLOW_CACHE_MAX_BYTES", "TASKFLOW_API_URL", "TASKFLOW_LOG_LEVEL", "TASKFLOW_JWT_SECRET",
}

var _ = Describe("Load", func() {
	var dir string

	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		Expect(os.WriteFile(p, []byte(content), 0o600)).To(Succeed())
		return p
	}

	BeforeEach(func() {
		var er error
		dir, er = os.MkdirTemp("", "taskflow-config")
		Expect(er).To(BeNil())
		for _, v := range envVars {
			Expect(os.Unsetenv(v)).To(Succeed())
		}
	})

	AfterEach(func() {
		for _, v := range envVars {
			_ = os.Unsetenv(v)
		}
		_ = os.RemoveAll(dir)
	})

	It("Should use the defaults", func() {
		cfg, er := config.Load("", filepath.Join(dir, "missing.env"))
		Expect(er).To(BeNil())
		Expect(cfg).To(Equal(config.Default()))
		Expect(cfg.CacheTTL()).To(Equal(time.Hour))
		Expect(cfg.Production()).To(BeFalse())
	})

	It("Should read the YAML file", func() {
		p := write("taskflow.yaml", `
env: production
addr: ":9090"
cache:
  ttl: 60
  prefix: test_
  maxBytes: 1024
`)
		cfg, er := config.Load(p, filepath.Join(dir, "missing.env"))
		Expect(er).To(BeNil())
		Expect(cfg.Production()).To(BeTrue())
		Expect(cfg.Addr).To(Equal(":9090"))
		Expect(cfg.Cache.TTL).To(Equal(60))
		Expect(cfg.Cache.Prefix).To(Equal("test_"))
		Expect(cfg.Cache.MaxBytes).To(Equal(int64(1024)))
		Expect(cfg.DB).To(Equal("taskflow.db"))
	})

	It("Should fail on a missing YAML file", func() {
		_, er := config.Load(filepath.Join(dir, "nope.yaml"))
		Expect(er).NotTo(BeNil())
	})

	It("Should let the environment override the file", func() {
		p := write("taskflow.yaml", "addr: \":9090\"\n")
		Expect(os.Setenv("TASKFLOW_ADDR", ":7070")).To(Succeed())
		Expect(os.Setenv("TASKFLOW_CACHE_TTL", "120")).To(Succeed())

		cfg, er := config.Load(p, filepath.Join(dir, "missing.env"))
		Expect(er).To(BeNil())
		Expect(cfg.Addr).To(Equal(":7070"))
		Expect(cfg.Cache.TTL).To(Equal(120))
	})

	It("Should ignore empty variables", func() {
		p := write("taskflow.yaml", "cache:\n  ttl: 60\n")
		Expect(os.Setenv("TASKFLOW_CACHE_TTL", "")).To(Succeed())
		Expect(os.Setenv("TASKFLOW_ADDR", "")).To(Succeed())

		cfg, er := config.Load(p, filepath.Join(dir, "missing.env"))
		Expect(er).To(BeNil())
		Expect(cfg.Cache.TTL).To(Equal(60))
		Expect(cfg.Addr).To(Equal(":8080"))
	})

		It("Should read variables from the env file", func() {
		env := write(".env", "TASKFLOW_JWT_SECRET=s3cr3t\nTASKFLOW_CACHE_TTL=abc\n")

		cfg, er := config.Load("", env)
		Expect(er).To(BeNil())
		Expect(cfg.JWTSecret).To(Equal("s3cr3t"))
		Expect(cfg.Cache.TTL).To(Equal(config.DefaultTTLSeconds))
	})
})

var _ = Describe("ParseTTL", func() {
	It("Should parse seconds", func() {
		Expect(config.ParseTTL("90")).To(Equal(90))
	})

	It("Should fall back to one hour", func() {
		Expect(config.ParseTTL("")).To(Equal(3600))
		Expect(config.ParseTTL("soon")).To(Equal(3600))
		Expect(config.ParseTTL("-5")).To(Equal(3600))
	})
})
