package publish

import (
	"html/template"
	"strings"

	"github.com/sporez/cardforge/engine/domain"
)

// dropPage is the standalone hero page for one fused card. The deployer
// serves it verbatim, so it carries its own styling.
var dropPage = template.Must(template.New("drop").Parse(`<!DOCTYPE html>
<html lang="en"><head>
<meta charset="utf-8"><meta name="viewport" content="width=device-width,initial-scale=1">
<title>{{if .Card.Name}}{{.Card.Name}}{{else}}SporeZ Drop{{end}}</title>
<style>
body{margin:0;padding:0;background:#0b1219;color:#fff;font-family:sans-serif}
.wrap{max-width:900px;margin:auto;padding:20px}
.hero{text-align:center}
.hero img{max-width:100%;border-radius:14px}
.banner{background:{{.Accent}};border-radius:10px;padding:6px 12px;display:inline-block;margin:10px 0}
.stats{display:flex;gap:18px;justify-content:center;font-weight:bold;margin:10px 0}
.effects{margin-top:20px}
.effect{background:#0f1620;padding:10px;border-radius:10px;margin-bottom:10px}
.tags{margin-top:14px;color:#70ffe0}
.footer{margin-top:24px;color:#8aa;font-size:12px;text-align:center}
</style>
</head><body>
<div class="wrap">
  <div class="hero">
    {{with .Image}}<img src="{{.}}" alt="">{{end}}
    <h1>{{.Card.Icon}} {{.Card.Name}}</h1>
    <div class="banner">{{.Card.Category}} &middot; {{.Card.Rarity}}</div>
    <div class="stats">
      <span>ATK {{.Card.Atk}}</span>
      <span>DEF {{.Card.Def}}</span>
      <span>LV {{.Card.Level}}</span>
      <span>{{.Card.Tribute}}</span>
    </div>
    {{with .Card.About}}<p>{{.}}</p>{{end}}
  </div>
  {{if .Card.Effects}}<div class="effects">
    {{range .Card.Effects}}<div class="effect">{{.Icons}} {{.Text}}</div>
    {{end}}</div>{{end}}
  {{if .Card.Tags}}<div class="tags">{{.Tags}}</div>{{end}}
  <div class="footer">{{.Card.Footer}}</div>
</div></body></html>
`))

type dropView struct {
	Card  domain.Card
	Image string
	Tags  string
	// Accent comes from the static trait table, never from page content.
	Accent template.CSS
}

// RenderPage renders the hero page HTML for a fusion result.
func RenderPage(res domain.FusionResult) (string, error) {
	view := dropView{
		Card:   res.Card,
		Tags:   strings.Join(res.Card.Tags, " "),
		Accent: template.CSS(domain.TraitsOf(res.Card.Category).Color),
	}
	if len(res.Card.CardImages) > 0 {
		view.Image = res.Card.CardImages[0].ImageURL
	}

	var b strings.Builder
	if err := dropPage.Execute(&b, view); err != nil {
		return "", err
	}
	return b.String(), nil
}
