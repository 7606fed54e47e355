package services

import (
	"log"
	"nutricoach/internal/models"
	"nutricoach/internal/repository"
	"sync"
	"time"
)

// TaskSweeper periodically completes in-progress tasks whose deadline has
// passed, so progress is accurate even for tasks nobody reads.
type TaskSweeper struct {
	taskRepo  repository.TaskRepository
	publisher EventPublisher
	interval  time.Duration
	now       func() time.Time

	stopChan chan struct{}
	wg       sync.WaitGroup
	running  bool
	mu       sync.Mutex
}

func NewTaskSweeper(taskRepo repository.TaskRepository, publisher EventPublisher, interval time.Duration) *TaskSweeper {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	return &TaskSweeper{
		taskRepo:  taskRepo,
		publisher: publisher,
		interval:  interval,
		now:       time.Now,
	}
}

func (s *TaskSweeper) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	stop := make(chan struct{})
	s.stopChan = stop
	s.mu.Unlock()

	s.wg.Add(1)
	go s.loop(stop)
}

func (s *TaskSweeper) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	stop := s.stopChan
	s.mu.Unlock()

	close(stop)
	s.wg.Wait()
}

func (s *TaskSweeper) loop(stop <-chan struct{}) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Sweep()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Sweep completes every expired task once and returns how many changed.
func (s *TaskSweeper) Sweep() int {
	now := s.now()
	// Nothing started less than a day ago can have expired.
	candidates, err := s.taskRepo.FindInProgressStartedBefore(now.Add(-24 * time.Hour))
	if err != nil {
		log.Printf("Task sweep failed: %v", err)
		return 0
	}

	completed := 0
	for i := range candidates {
		task := &candidates[i]
		if !AutoComplete(task, now) {
			continue
		}
		if err := s.taskRepo.Update(task); err != nil {
			log.Printf("Failed to auto-complete task %d: %v", task.ID, err)
			continue
		}
		completed++
		PublishAsync(s.publisher, EventTaskCompleted, TaskCompletedEvent(task))
	}

	if completed > 0 {
		log.Printf("Task sweep completed %d task(s)", completed)
	}
	return completed
}

// TaskCompletedEvent is the payload published for task.completed.
func TaskCompletedEvent(task *models.Task) map[string]interface{} {
	return map[string]interface{}{
		"task_id":      task.ID,
		"user_id":      task.UserID,
		"title":        task.Title,
		"completed_at": task.CompletedAt,
	}
}
