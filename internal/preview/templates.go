package preview

// pageTemplate is the Go html/template for preview pages.
const pageTemplate = `<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}</title>
  <script src="https://cdn.jsdelivr.net/npm/mermaid@10/dist/mermaid.min.js"></script>
  <style>
    body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif; margin: 0; display: flex; min-height: 100vh; }
    main { flex: 1; padding: 2rem; overflow: auto; }
    aside { width: 32rem; max-width: 40%; border-left: 1px solid #d0d7de; padding: 1rem; overflow: auto; background: #f6f8fa; }
    aside pre { font-size: 0.8rem; }
    .mermaid { text-align: center; }
    .error { color: #cf222e; }
  </style>
</head>
<body>
  <main id="content">
    {{.Content}}
  </main>
  {{if .Inspector}}<aside id="inspector">{{.Inspector}}</aside>{{end}}
  <script>
    mermaid.initialize({ startOnLoad: true });
    {{if .SessionID}}
    (function () {
      var proto = location.protocol === "https:" ? "wss://" : "ws://";
      var ws = new WebSocket(proto + location.host + "/api/sessions/{{.SessionID}}/ws");
      var content = document.getElementById("content");
      ws.onmessage = async function (ev) {
        var msg = JSON.parse(ev.data);
        if (msg.type !== "preview") { return; }
        try {
          var out = await mermaid.render("preview-" + Date.now(), msg.code);
          content.innerHTML = out.svg;
        } catch (err) {
          content.innerHTML = '<p class="error"></p>';
          content.firstChild.textContent = String(err);
        }
      };
    })();
    {{end}}
  </script>
</body>
</html>`
