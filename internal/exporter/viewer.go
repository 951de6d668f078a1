package exporter

import (
	"html/template"
	"os"
)

// DefaultScriptURL is the standalone lightweight-charts build used by viewer pages.
const DefaultScriptURL = "https://unpkg.com/lightweight-charts@4.2.0/dist/lightweight-charts.standalone.production.js"

var viewerTmpl = template.Must(template.New("viewer").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Interval}} Chart - {{.Ticker}}</title>
    <script src="{{.ScriptURL}}"></script>
</head>
<body>
    <h3>{{.Ticker}} · {{.Interval}}</h3>
    <div id="chart" data-src="{{.DataPath}}" style="width: 100%; height: 400px;"></div>
    <p id="status"></p>

    <script>
        const el = document.getElementById('chart');
        fetch(el.dataset.src)
        .then(response => response.json())
        .then(data => {
            if (data.length === 0) {
                document.getElementById('status').textContent = 'No data available for this interval.';
                return;
            }
            const chart = LightweightCharts.createChart(el, {
                width: 600,
                height: 400,
                timeScale: { timeVisible: true, secondsVisible: false },
            });
            const series = chart.addCandlestickSeries();
            series.setData(data);
            chart.timeScale().fitContent();
        })
        .catch(error => console.error('Error fetching the data:', error));
    </script>
</body>
</html>
`))

type viewerData struct {
	Ticker    string
	Interval  string
	DataPath  string
	ScriptURL string
}

func (w *Writer) writeViewer(path, ticker, interval string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePerm)
	if err != nil {
		return err
	}
	err = viewerTmpl.Execute(f, viewerData{
		Ticker:    ticker,
		Interval:  interval,
		DataPath:  "./" + dataDir + "/" + interval + ".json",
		ScriptURL: w.ScriptURL,
	})
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
