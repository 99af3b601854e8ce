package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/zurustar/intc/pkg/app"
)

func main() {
	application := app.New()
	if err := application.Run(os.Args[1:]); err != nil {
		// 変換失敗は結果メッセージとログで報告済み
		if !errors.Is(err, app.ErrTranslate) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
