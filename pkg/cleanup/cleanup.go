package cleanup

import (
	"log"
	"sync"
)

type Job struct {
	Name string
	F    func() error
}

var (
	mu   sync.Mutex
	jobs []*Job
)

func Register(j *Job) {
	mu.Lock()
	defer mu.Unlock()
	jobs = append(jobs, j)
}

// CleanUp runs registered jobs in reverse registration order, so resources
// shut down before their dependencies.
func CleanUp() {
	mu.Lock()
	defer mu.Unlock()
	for i := len(jobs) - 1; i >= 0; i-- {
		j := jobs[i]
		log.Printf("Cleanup job %s started...", j.Name)
		if err := j.F(); err != nil {
			log.Printf("Job %s finished with error: %v", j.Name, err)
		} else {
			log.Printf("Job %s cleaned", j.Name)
		}
	}
	jobs = nil
}
