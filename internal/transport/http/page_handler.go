package http

import "net/http"

// PageHandler serves the quiz page. The page holds no quiz logic: it opens
// the live session socket, forwards user actions and applies region patches.
func PageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(quizPage))
	}
}

const quizPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Quiz</title>
<style>
  body { font-family: sans-serif; max-width: 48rem; margin: 2rem auto; }
  #timer { font-weight: bold; margin-bottom: 1rem; }
</style>
</head>
<body>
<button id="start-button" type="button">Start</button>
<div id="quiz-container" style="display:none">
  <div id="timer"></div>
  <form id="quiz-form"></form>
  <button id="submit-button" type="button">Submit</button>
</div>
<div id="result" style="display:none"></div>
<script>
(function () {
  var scheme = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(scheme + location.host + "/ws");
  function send(type, payload) {
    ws.send(JSON.stringify({ type: type, payload: payload }));
  }
  ws.onmessage = function (ev) {
    var msg = JSON.parse(ev.data);
    if (msg.type === "error") {
      console.error("quiz:", msg.payload.message);
      return;
    }
    if (msg.type !== "patch") return;
    var p = msg.payload;
    var el = document.getElementById(p.region);
    if (!el) return;
    el.style.display = p.visible ? "block" : "none";
    if (p.html) {
      el.innerHTML = p.html;
    } else if (p.text) {
      el.textContent = p.text;
    }
  };
  document.getElementById("start-button").onclick = function () { send("start"); };
  document.getElementById("submit-button").onclick = function () { send("submit"); };
  document.getElementById("quiz-form").addEventListener("change", function (ev) {
    var input = ev.target;
    if (!input.name || input.name.charAt(0) !== "q") return;
    send("answer", { index: parseInt(input.name.slice(1), 10), option: input.value });
  });
})();
</script>
</body>
</html>
`
