package cmd_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/msaldanha/taskflow/cmd"
	"github.com/msaldanha/taskflow/config"
	"github.com/msaldanha/taskflow/server"
)

func run(args ...string) (string, error) {
	root := cmd.NewRootCommand()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	er := root.Execute()
	return out.String(), er
}

var _ = Describe("Commands", func() {
	It("Should sanitize text", func() {
		out, er := run("sanitize", "<b>hi</b>")
		Expect(er).To(BeNil())
		Expect(out).To(Equal("bhi/b\n"))
	})

	It("Should validate field values", func() {
		out, er := run("validate", "email", "ana@example.com")
		Expect(er).To(BeNil())
		Expect(out).To(Equal("valid\n"))

		_, er = run("validate", "phone", "call me")
		Expect(er).NotTo(BeNil())

		_, er = run("validate", "zip", "12345")
		Expect(er).NotTo(BeNil())
	})

	Context("With a database", func() {
		var dir, cfgFile string

		BeforeEach(func() {
			var er error
			dir, er = os.MkdirTemp("", "taskflow-cmd")
			Expect(er).To(BeNil())
			cfgFile = filepath.Join(dir, "taskflow.yaml")
			db := filepath.Join(dir, "taskflow.db")
			Expect(os.WriteFile(cfgFile, []byte("db: "+db+"\n"), 0o600)).To(Succeed())

			cfg := config.Default()
			cfg.DB = db
			srv, er := server.NewServer(server.Options{Config: cfg, Logger: zap.NewNop()})
			Expect(er).To(BeNil())
			Expect(srv.Cache().Set("greeting", json.RawMessage(`"hola"`))).To(Succeed())
			Expect(srv.Cache().SetWithTTL("stale", json.RawMessage(`1`), -time.Second)).To(Succeed())
			Expect(srv.Close()).To(Succeed())
		})

		AfterEach(func() {
			_ = os.RemoveAll(dir)
		})

		It("Should read cached values", func() {
			out, er := run("--config", cfgFile, "cache", "get", "greeting")
			Expect(er).To(BeNil())
			Expect(out).To(Equal("\"hola\"\n"))

			_, er = run("--config", cfgFile, "cache", "get", "missing")
			Expect(er).To(MatchError(ContainSubstring("not cached")))
		})

		It("Should sweep and clear the cache", func() {
			out, er := run("--config", cfgFile, "cache", "sweep")
			Expect(er).To(BeNil())
			Expect(out).To(Equal("removed 1 expired entries\n"))

			out, er = run("--config", cfgFile, "cache", "list")
			Expect(er).To(BeNil())
			Expect(out).To(Equal("greeting\n"))

			_, er = run("--config", cfgFile, "cache", "clear")
			Expect(er).To(BeNil())
			out, er = run("--config", cfgFile, "cache", "list")
			Expect(er).To(BeNil())
			Expect(out).To(BeEmpty())
		})

		It("Should list no error reports on a fresh database", func() {
			out, er := run("--config", cfgFile, "errors", "list")
			Expect(er).To(BeNil())
			Expect(out).To(BeEmpty())
		})
	})
})
