package export

import (
	"fmt"
	"html"

	"github.com/hitoshi/resumake/internal/template"
)

// pageShell はレンダラーのフラグメントを印刷可能な完全なHTML文書に包む。
// 用紙設定はA4固定。
func pageShell(title string, fragment []byte) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>%s
  @page { size: A4; margin: 12mm; }
</style>
</head>
<body>
%s
</body>
</html>`, html.EscapeString(title), template.BaseCSS, fragment)
}
