package services

import (
	"context"

	"github.com/alimgiray/gitossum/internal/models"
	"github.com/alimgiray/gitossum/internal/repositories"
	"github.com/alimgiray/gitossum/pkg/kafka"
	"github.com/alimgiray/gitossum/pkg/logger"
)

// MiningRequestService records mining requests and queues them for the mining worker
type MiningRequestService struct {
	requestRepo *repositories.MiningRequestRepository
	publisher   kafka.Publisher
}

func NewMiningRequestService(requestRepo *repositories.MiningRequestRepository, publisher kafka.Publisher) *MiningRequestService {
	return &MiningRequestService{
		requestRepo: requestRepo,
		publisher:   publisher,
	}
}

// CreateRequest persists the request, then queues it. The stored row is authoritative, so a
// queue failure is only logged.
func (s *MiningRequestService) CreateRequest(ctx context.Context, repoName, notifyEmail, userEmail, username string) (*models.MiningRequest, error) {
	request := models.NewMiningRequest(repoName, userEmail, notifyEmail, username)
	if err := s.requestRepo.Create(request); err != nil {
		return nil, err
	}

	if err := s.publisher.Publish(ctx, request.RepoName, request); err != nil {
		logger.WithError(err).WithField("request_id", request.ID).Warn("Failed to queue mining request")
	}

	return request, nil
}

// GetRequestsByUser lists the requests a user has submitted
func (s *MiningRequestService) GetRequestsByUser(username string) ([]*models.MiningRequest, error) {
	return s.requestRepo.GetByRequester(username)
}
