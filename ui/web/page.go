// Copyright 2025-2026 The fnplot Authors. SPDX-License-Identifier: Apache-2.0

package web

import "html/template"

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>fnplot</title>
<style>
body { font-family: sans-serif; margin: 2em; }
#expression { font-family: monospace; font-size: 1.2em; width: 30em; }
#markup { font-size: 1.4em; min-height: 2em; margin: 1em 0; }
#error { color: #c00; min-height: 1em; }
.chart { max-width: 60em; }
</style>
</head>
<body>
<label for="expression">y = </label>
<input id="expression" type="text" value="{{.Expression}}" autocomplete="off" spellcheck="false" autofocus>
<div id="error">{{.Error}}</div>
<div id="markup">{{.Markup}}</div>
<div id="charts">
{{range .Charts}}<div class="chart" data-chart-id="{{.ID}}">{{.HTML}}</div>
{{end}}</div>
<script type="text/javascript">
(function() {
	var input = document.getElementById("expression");
	var charts = document.getElementById("charts");
	var queue = Promise.resolve();

	function runScript(code) {
		var s = document.createElement("script");
		s.type = "text/javascript";
		s.text = code;
		document.body.appendChild(s);
		s.remove();
	}

	function chartDiv(id) {
		var divs = charts.getElementsByClassName("chart");
		for (var i = 0; i < divs.length; i++) {
			if (divs[i].dataset.chartId === id) {
				return divs[i];
			}
		}
		var div = document.createElement("div");
		div.className = "chart";
		div.dataset.chartId = id;
		charts.appendChild(div);
		return div;
	}

	function showFrame(frame) {
		if (frame.kind === "script") {
			runScript(frame.content);
			return;
		}
		var div = chartDiv(frame.chart_id);
		if (frame.kind === "png") {
			div.innerHTML = "";
			var img = document.createElement("img");
			img.src = "data:image/png;base64," + frame.content;
			div.appendChild(img);
		} else if (frame.kind === "text") {
			div.innerHTML = "";
			var pre = document.createElement("pre");
			pre.textContent = frame.content;
			div.appendChild(pre);
		} else {
			div.innerHTML = frame.content;
			// Scripts inserted with innerHTML don't run: re-create them.
			var scripts = div.getElementsByTagName("script");
			for (var i = 0; i < scripts.length; i++) {
				var old = scripts[i];
				var s = document.createElement("script");
				s.type = old.type || "text/javascript";
				s.text = old.text;
				old.parentNode.replaceChild(s, old);
			}
		}
	}

	function send(expression) {
		return fetch("api/expression", {
			method: "POST",
			headers: {"Content-Type": "application/json"},
			body: JSON.stringify({expression: expression}),
		}).then(function(response) {
			if (!response.ok) {
				throw new Error(response.statusText);
			}
			return response.json();
		}).then(function(update) {
			update.frames.forEach(showFrame);
			document.getElementById("markup").innerHTML = update.markup;
			document.getElementById("error").textContent = update.error || "";
		}).catch(function(err) {
			console.log("fnplot:", err);
		});
	}

	input.addEventListener("input", function() {
		var expression = input.value;
		queue = queue.then(function() { return send(expression); });
	});

	window.addEventListener("load", function() {
{{range .Scripts}}		try {
{{.}}
		} catch (err) {
			console.log("fnplot:", err);
		}
{{end}}	});
})();
</script>
</body>
</html>
`))
