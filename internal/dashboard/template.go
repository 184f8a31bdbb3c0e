package dashboard

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
    <title>🌱 AquaSense Smart Agriculture System</title>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <meta http-equiv="refresh" content="30">
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 20px; background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; }
        .container { max-width: 1200px; margin: 0 auto; }
        .header { text-align: center; margin-bottom: 30px; }
        .card { background: rgba(255,255,255,0.1); padding: 20px; margin: 15px 0; border-radius: 15px; border: 1px solid rgba(255,255,255,0.2); }
        .status-good { border-left: 5px solid #4CAF50; padding-left: 10px; }
        .grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(300px, 1fr)); gap: 20px; }
        .sensor-reading { font-size: 22px; font-weight: bold; margin: 10px 0; }
        .timestamp { font-size: 12px; opacity: 0.8; }
        .info { background: rgba(0,0,0,0.3); padding: 15px; border-radius: 10px; margin: 10px 0; }
        .code { font-family: monospace; background: rgba(0,0,0,0.5); padding: 10px; border-radius: 5px; margin: 5px 0; }
        .log-entry { background: rgba(0,0,0,0.2); padding: 10px; margin: 5px 0; border-radius: 8px; font-size: 14px; }
        .badge-good { color: #4CAF50; }
        .badge-warning { color: #FF9800; }
        .badge-danger { color: #f44336; }
        .badge-neutral { color: #cccccc; }
    </style>
</head>
<body>
<div class="container">
    <div class="header">
        <h1>🌱 AquaSense Smart Agriculture System</h1>
        <p>Real-time Sensor Monitoring &amp; Crop Prediction</p>
    </div>

    <div class="grid">
        <div class="card">
            <h2>📡 Server Status</h2>
            <div class="status-good">
                <p><strong>Status:</strong> ✅ Active and Running</p>
                <p><strong>Total Readings:</strong> {{.TotalReadings}}</p>
                <p><strong>Last Updated:</strong> {{.CurrentTime}}</p>
            </div>
            <div class="info">
                <h3>🔗 Device Connection Info</h3>
                <p><strong>Send data to:</strong></p>
                <div class="code">POST {{.IngestPath}}</div>
                <p><strong>Content-Type:</strong> application/json</p>
            </div>
        </div>

        <div class="card">
            <h2>📊 Latest Sensor Data</h2>
            {{with .Latest}}
            <div class="sensor-reading">🌡️ Temperature: {{oneDecimal .Temperature}}°C</div>
            <div class="sensor-reading">💧 Air Humidity: {{oneDecimal .Humidity}}%</div>
            <div class="sensor-reading">🌱 Soil Moisture: {{oneDecimal .Moisture}}%</div>
            <div class="sensor-reading">
                🌊 Water Table Depth: {{if .HasDistance}}{{oneDecimal .Distance}}cm{{else}}n/a{{end}}
                <span class="{{badgeClass .Analysis.WaterTableLevel}}">{{badgeText .Analysis.WaterTableLevel}}</span>
            </div>
            <div class="sensor-reading">🏔️ Soil Type: {{.SoilType}}</div>
            <div class="timestamp">{{stamp .}}</div>
            {{else}}
            <p>⏳ Waiting for device data...</p>
            <p>Make sure the field device is connected and sending data.</p>
            {{end}}
        </div>
    </div>

    {{with .Latest}}
    <div class="card status-good">
        <h2>🤖 Analysis Results</h2>
        <div class="grid">
            <div>
                <h3>🌾 Crop Recommendation</h3>
                <p><strong>Recommended:</strong> {{.Analysis.PredictedCrop}}</p>
                <p><strong>Confidence:</strong> {{.Analysis.Confidence}}</p>
                <p><strong>Fertilizer:</strong> {{.Analysis.FertilizerAdvice}}</p>
            </div>
            <div>
                <h3>💧 Water Management</h3>
                <p><strong>Status:</strong> {{.Analysis.WaterStatus}}</p>
                <p><strong>Irrigation:</strong> {{.Analysis.IrrigationAdvice}}</p>
                <p><strong>Water Table:</strong> {{.Analysis.WaterTableEstimate}}</p>
            </div>
        </div>
    </div>
    {{end}}

    <div class="card">
        <h2>🌾 Recommended Crop Details</h2>
        {{with .Crop}}
        <div class="status-good">
            <h3>{{.Name}}</h3>
            <p><strong>Description:</strong> {{.Description}}</p>
            <div class="grid">
                <div class="info">
                    <h4>🌱 Optimal Growing Conditions</h4>
                    {{range $k, $v := .OptimalConditions}}<p><strong>{{$k}}:</strong> {{$v}}</p>
                    {{end}}
                </div>
                {{if .Catalogued}}
                <div class="info">
                    <h4>📊 Crop Information</h4>
                    <p><strong>Growing Period:</strong> {{.GrowingPeriod}}</p>
                    <p><strong>Planting Season:</strong> {{.PlantingSeason}}</p>
                    <p><strong>Expected Yield:</strong> {{.Yield}}</p>
                    <p><strong>Market Value:</strong> {{.MarketValue}}</p>
                </div>
                {{end}}
            </div>
            <div class="info">
                <h4>💡 Care Tips &amp; Best Practices</h4>
                {{range .CareTips}}<p>• {{.}}</p>
                {{end}}
            </div>
            {{if .Nutrition}}<div class="code"><strong>🥗 Nutritional Information:</strong><br>{{.Nutrition}}</div>{{end}}
        </div>
        {{else}}
        <p>🔄 Crop details will appear here once sensor data is received and analyzed.</p>
        <div class="info">
            <h4>🌾 Available Crop Database</h4>
            <div class="code">{{range $i, $c := .KnownCrops}}{{if $i}} • {{end}}{{$c}}{{end}}</div>
        </div>
        {{end}}
    </div>

    <div class="card">
        <h2>📋 Recent Activity Log</h2>
        {{range .Recent}}
        <div class="log-entry">
            <strong>{{stamp .}}</strong> -
            🌡️{{oneDecimal .Temperature}}°C,
            💧{{oneDecimal .Humidity}}%,
            🌱{{oneDecimal .Moisture}}% → {{.Analysis.PredictedCrop}}
        </div>
        {{else}}
        <p>No data received yet. The device will appear here when connected.</p>
        {{end}}
    </div>
</div>
<script>
    setTimeout(function () { location.reload(); }, 30000);
</script>
</body>
</html>
`
