package routes

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kataras/iris/v12"
)

type exportJob struct {
	ID        string `json:"id"`
	Resource  string `json:"resource"`
	Status    string `json:"status"` // pending, processing, done, failed
	CreatedAt int64  `json:"created_at"`
}

var (
	exportJobs   = map[string]*exportJob{}
	exportJobsMu sync.Mutex
)

// POST /admin/export { resource, filters }
func AdminCreateExport(ctx iris.Context) {
	var body struct {
		Resource string                 `json:"resource"`
		Filters  map[string]interface{} `json:"filters"`
	}
	if err := ctx.ReadJSON(&body); err != nil || body.Resource == "" {
		ctx.StopWithJSON(http.StatusBadRequest, iris.Map{"error": "validation_error", "message": "resource required"})
		return
	}

	job := &exportJob{
		ID:        uuid.NewString(),
		Resource:  body.Resource,
		Status:    "pending",
		CreatedAt: time.Now().Unix(),
	}
	exportJobsMu.Lock()
	exportJobs[job.ID] = job
	exportJobsMu.Unlock()

	go func(j *exportJob) {
		j.Status = "processing"
		time.Sleep(500 * time.Millisecond)
		j.Status = "done"
	}(job)

	ctx.JSON(iris.Map{"data": iris.Map{"id": job.ID, "status": job.Status}})
}

// GET /admin/export/:id
func AdminGetExport(ctx iris.Context) {
	id := ctx.Params().GetString("id")
	exportJobsMu.Lock()
	job, ok := exportJobs[id]
	exportJobsMu.Unlock()
	if !ok {
		ctx.StopWithJSON(http.StatusNotFound, iris.Map{"error": "not_found", "message": "job not found"})
		return
	}
	ctx.JSON(iris.Map{"data": job})
}
