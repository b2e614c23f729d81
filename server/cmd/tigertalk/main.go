package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"

	"tiger-talk/server/internal/api"
	"tiger-talk/server/internal/chat"
	"tiger-talk/server/internal/config"
	"tiger-talk/server/internal/llm"
	"tiger-talk/server/internal/model"
	"tiger-talk/server/internal/store"
)

func main() {
	// 第一阶段以“本地可跑、可调试”为优先：参数用 flag，敏感信息（Groq API Key）用环境变量。
	// - GROQ_API_KEY：调用 Groq 生成接口（不要放进配置文件提交）
	// - GROQ_MOCK=true：没有 Key 时用本地兜底回复离线开发
	configPath := flag.String("config", "server/configs/config.yaml", "config file path")
	demoUserID := flag.Int64("demo-user", 1, "seed user id for local development")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	st := store.NewInMemoryStore()
	// 身份体系由外部负责；本地开发先种一个演示用户。
	st.PutUser(model.User{UserID: *demoUserID, Nickname: "demo"})

	client := llm.NewGroqClient(cfg.Groq)
	orchestrator := chat.NewOrchestrator(
		st,
		llm.NewGenerator(client),
		llm.NewTranslator(client),
		llm.NewMockResponder(),
		cfg.Groq.Mock,
	)

	server := api.NewServer(cfg, orchestrator)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      server.Routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	log.Printf("tigertalk server listening on %s", addr)
	if err := httpServer.ListenAndServe(); err != nil {
		log.Fatalf("serve: %v", err)
	}
}
