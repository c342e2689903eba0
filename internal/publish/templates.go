package publish

const articleTemplate = `<!DOCTYPE html>
<html lang="ko">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} | {{.SiteTitle}}</title>
{{if .Summary}}<meta name="description" content="{{.Summary}}">{{end}}
</head>
<body>
<header><a href="/">{{.SiteTitle}}</a></header>
<main>
<article>
<h1>{{.Title}}</h1>
<p class="meta">{{.CreatedAt}} · 검색어: {{.Keyword}}</p>
{{if .Summary}}<p class="summary">{{.Summary}}</p>{{end}}
{{range .Paragraphs}}<p>{{.}}</p>
{{end}}
{{if .SourceURLs}}
<section class="sources">
<h2>참고 기사</h2>
<ul>
{{range .SourceURLs}}<li><a href="{{.}}" rel="nofollow">{{.}}</a></li>
{{end}}</ul>
</section>
{{end}}
</article>
</main>
</body>
</html>
`

const indexTemplate = `<!DOCTYPE html>
<html lang="ko">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.SiteTitle}}</title>
</head>
<body>
<header><h1>{{.SiteTitle}}</h1></header>
<main>
{{if .Trends}}
<section class="trends">
<h2>지금 뜨는 검색어</h2>
<ul>
{{range .Trends}}<li>{{.}}</li>
{{end}}</ul>
</section>
{{end}}
<section class="articles">
<h2>최신 글</h2>
{{range .Articles}}
<article>
<h3><a href="/articles/{{.Slug}}.html">{{.Title}}</a></h3>
<p class="meta">{{.CreatedAt}} · {{.Keyword}}</p>
{{if .Summary}}<p>{{.Summary}}</p>{{end}}
</article>
{{end}}
</section>
</main>
<footer>갱신: {{.GeneratedAt}}</footer>
</body>
</html>
`
