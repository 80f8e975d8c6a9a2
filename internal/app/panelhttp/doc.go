// Package panelhttp реализует HTTP-интерфейс панели поверх стора каталога и
// сервиса загрузок. Основные эндпоинты:
//   - GET  /api/data — отдаёт каталог сервисов (при первом обращении сеет дефолтный).
//   - POST /api/data и PUT /api/data — целиком заменяют каталог из тела запроса.
//   - POST /api/upload — принимает один файл (multipart-поле file либо сырое тело).
//   - GET  /uploads/{name} — отдаёт принятый ранее файл по назначенному имени.
//   - GET  /health — агрегированная статистика по каталогу данных.
package panelhttp
