package guild

import (
	"fmt"
	"html"
	"net/http"
	"strconv"
)

// playgroundPage loads GraphiQL from a CDN. Queries and mutations are sent
// as POST requests to the endpoint.
const playgroundPage = `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8" />
    <title>%s</title>
    <style>
        body { height: 100%%; margin: 0; overflow: hidden; }
        #graphiql { height: 100vh; }
    </style>
    <link rel="stylesheet" href="https://unpkg.com/graphiql@1.4.0/graphiql.min.css" />
    <script src="https://unpkg.com/react@16.14.0/umd/react.production.min.js"></script>
    <script src="https://unpkg.com/react-dom@16.14.0/umd/react-dom.production.min.js"></script>
    <script src="https://unpkg.com/graphiql@1.4.0/graphiql.min.js"></script>
</head>
<body>
    <div id="graphiql">Loading...</div>
    <script>
      var endpoint = %s;
      function fetcher(params) {
        return fetch(endpoint, {
          method: 'post',
          headers: { Accept: 'application/json', 'Content-Type': 'application/json' },
          body: JSON.stringify(params),
          credentials: 'omit',
        }).then(function (response) {
          return response.json().catch(function () { return response.text(); });
        });
      }
      ReactDOM.render(
        React.createElement(GraphiQL, { fetcher: fetcher }),
        document.getElementById('graphiql'),
      );
    </script>
</body>
</html>`

// PlaygroundHandler serves a GraphiQL page that sends operations to
// endpoint, usually the path HTTPHandler is mounted on.
func PlaygroundHandler(title, endpoint string) http.Handler {
	page := fmt.Sprintf(playgroundPage, html.EscapeString(title), strconv.Quote(endpoint))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if r.Method == http.MethodHead {
			return
		}
		_, _ = w.Write([]byte(page))
	})
}
