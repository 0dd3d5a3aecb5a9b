package render

const resultsTemplate = `{{if .Records}}<ul>
{{- range .Records}}
<li><strong>{{.ID}}</strong>: {{.Description}}</li>
{{- end}}
</ul>{{else}}<p>{{.NoResults}}</p>{{end}}`

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8" />
  <title>Fetch CVEs</title>
  <link href="https://stackpath.bootstrapcdn.com/bootstrap/4.5.2/css/bootstrap.min.css" rel="stylesheet">
</head>
<body>
  <div class="container">
    <h1 class="mt-5">Fetch Recent CVEs</h1>
    <form action="/fetch_cves" method="post" class="mt-3">
      <div class="form-group">
        <label for="keyword">Keyword (Vendor, Product, or CVE Name)</label>
        <input type="text" class="form-control" id="keyword" name="keyword" value="{{.Keyword}}" required>
      </div>
      <button type="submit" class="btn btn-primary">Fetch CVEs</button>
    </form>
    <hr>
    <div id="results">
      {{.Results}}
    </div>
  </div>
</body>
</html>
`
