package http

import (
	"html/template"
	"io"

	"github.com/weatherwidget/backend/internal/domain"
	"github.com/weatherwidget/backend/pkg/utils"
)

// PageData is everything the page template needs for one render
type PageData struct {
	Messages domain.Messages
	State    domain.UiState
	Query    string
	IconURL  string
}

var pageTemplate = template.Must(template.New("page").Funcs(template.FuncMap{
	"round": utils.RoundHalfUp,
	"num":   utils.FormatNumber,
}).Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    {{if eq .State.Phase "loading"}}<meta http-equiv="refresh" content="1">{{end}}
    <title>{{.Messages.Title}}</title>
    <style>
        body { font-family: Arial, sans-serif; max-width: 600px; margin: 32px auto; text-align: center; color: #333; }
        form { display: flex; margin-bottom: 32px; }
        input { flex: 1; padding: 12px; font-size: 16px; }
        button { padding: 12px 16px; }
        .spinner { margin: 32px auto; width: 40px; height: 40px; border: 4px solid #ddd; border-top-color: #1976d2; border-radius: 50%; animation: spin 1s linear infinite; }
        @keyframes spin { to { transform: rotate(360deg); } }
        .error { color: #d32f2f; margin: 16px 0; }
        .card { padding: 24px; border-radius: 8px; background: #fff; box-shadow: 0 3px 6px rgba(0,0,0,0.16); }
    </style>
</head>
<body>
    <h1>{{.Messages.Title}}</h1>

    <form method="POST" action="/search">
        <input type="text" name="city" value="{{.Query}}" placeholder="{{.Messages.Placeholder}}">
        <button type="submit">&#128269;</button>
    </form>

    {{if eq .State.Phase "loading"}}
    <div class="spinner"></div>
    {{end}}

    {{if eq .State.Phase "failed"}}
    <p class="error">{{.State.Error}}</p>
    {{end}}

    {{with .State.Snapshot}}
    <div class="card">
        <h2>{{.Name}}</h2>
        {{if $.IconURL}}<img src="{{$.IconURL}}" alt="{{.Description}}">{{end}}
        <h1>{{round .Temperature}}°C</h1>
        <h3>{{.Condition}}</h3>
        <p>{{$.Messages.FeelsLike}}: {{round .FeelsLike}}°C</p>
        <p>{{$.Messages.Humidity}}: {{.Humidity}}%</p>
        <p>{{$.Messages.Wind}}: {{num .WindSpeed}} m/s</p>
    </div>
    {{end}}
</body>
</html>
`))

// RenderPage writes the widget page for the given state
func RenderPage(w io.Writer, data PageData) error {
	return pageTemplate.Execute(w, data)
}
