package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/moviesrv/moviesrv/internal/config"
	"github.com/moviesrv/moviesrv/internal/server"
	log "github.com/sirupsen/logrus"
)

var (
	bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	hintStyle   = lipgloss.NewStyle().Faint(true)
)

func main() {
	dir, err := config.MovieDir()
	if err != nil {
		log.Errorf("Failed to resolve media directory: %v", err)
		os.Exit(1)
	}

	srv := server.New(dir)
	if err := srv.Listen(); err != nil {
		log.Errorf("Failed to start HTTP server: %v", err)
		os.Exit(1)
	}

	fmt.Println(bannerStyle.Render(fmt.Sprintf("✅ Server running at: http://localhost:%d", config.Port)))
	fmt.Println(bannerStyle.Render(fmt.Sprintf("📁 Serving files from: %s", dir)))
	fmt.Println(hintStyle.Render("Optional query params for estimation: ?bitrate=8000000&fps=60"))
	fmt.Println(hintStyle.Render("Press Enter to stop..."))

	go func() {
		if err := srv.Serve(); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// A newline from the operator (or stdin closing) triggers shutdown.
	_, _ = bufio.NewReader(os.Stdin).ReadString('\n')

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warnf("Shutdown incomplete: %v", err)
	}
	fmt.Println("\n🛑 Server stopped.")
}
