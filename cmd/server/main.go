package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"retailserver/internal/config"
	"retailserver/server"
)

func main() {
	log.Println("Запуск Retail Analytics Server...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}
	log.Printf("Конфигурация загружена. Порт: %s", cfg.Port)

	srv := server.NewServer(cfg)

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatalf("Ошибка запуска сервера: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	log.Printf("Получен сигнал %v, останавливаем сервер...", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Ошибка при остановке сервера: %v", err)
		os.Exit(1)
	}
	log.Println("Сервер остановлен")
}
