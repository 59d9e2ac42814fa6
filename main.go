package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/hitoshi/resumake/internal/app"
)

func main() {
	// .envファイルが存在すればロードする（ローカル開発用）。
	// 本番環境では環境変数が直接設定されるため、ファイルがなくてもエラーにしない。
	_ = godotenv.Load()

	if err := app.Run(os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "resumake: %v\n", err)
		os.Exit(1)
	}
}
