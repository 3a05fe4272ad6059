package tour

import (
	"context"
	"errors"

	"github.com/fleischhandel/backend/internal/domain/shared"
	"github.com/fleischhandel/backend/internal/domain/tour"
	"github.com/google/uuid"
)

// RegionRuleService manages the delivery-day rules per region
type RegionRuleService struct {
	ruleRepo tour.RegionRuleRepository
}

// NewRegionRuleService creates a new RegionRuleService
func NewRegionRuleService(ruleRepo tour.RegionRuleRepository) *RegionRuleService {
	return &RegionRuleService{ruleRepo: ruleRepo}
}

// Set creates or replaces the rule of a region
func (s *RegionRuleService) Set(ctx context.Context, req SetRegionRuleRequest) (*RegionRuleResponse, error) {
	existing, err := s.ruleRepo.FindByRegion(ctx, req.Region)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	var rule *tour.RegionRule
	if existing != nil {
		rule = existing
		if err := rule.SetWochentage(req.Wochentage); err != nil {
			return nil, err
		}
	} else {
		rule, err = tour.NewRegionRule(req.Region, req.Wochentage)
		if err != nil {
			return nil, err
		}
	}

	if req.Aktiv != nil {
		if *req.Aktiv {
			rule.Activate()
		} else {
			rule.Deactivate()
		}
	}

	if err := s.ruleRepo.Save(ctx, rule); err != nil {
		return nil, err
	}

	response := ToRegionRuleResponse(rule)
	return &response, nil
}

// List retrieves all region rules
func (s *RegionRuleService) List(ctx context.Context, filter shared.Filter) ([]RegionRuleResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 50
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "region"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "asc"
	}

	rules, err := s.ruleRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]RegionRuleResponse, len(rules))
	for i := range rules {
		responses[i] = ToRegionRuleResponse(&rules[i])
	}
	return responses, nil
}

// GetByRegion retrieves the rule of one region
func (s *RegionRuleService) GetByRegion(ctx context.Context, region string) (*RegionRuleResponse, error) {
	rule, err := s.ruleRepo.FindByRegion(ctx, region)
	if err != nil {
		return nil, err
	}
	response := ToRegionRuleResponse(rule)
	return &response, nil
}

// Delete removes a rule; the region becomes deliverable on every day
func (s *RegionRuleService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.ruleRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.ruleRepo.Delete(ctx, id)
}

// VorlageService manages the stop-order templates per region
type VorlageService struct {
	vorlageRepo tour.VorlageRepository
}

// NewVorlageService creates a new VorlageService
func NewVorlageService(vorlageRepo tour.VorlageRepository) *VorlageService {
	return &VorlageService{vorlageRepo: vorlageRepo}
}

// Set creates or replaces the template of a region
func (s *VorlageService) Set(ctx context.Context, region string, req SetVorlageRequest) (*VorlageResponse, error) {
	existing, err := s.vorlageRepo.FindByRegion(ctx, region)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	var vorlage *tour.ReihenfolgeVorlage
	if existing != nil {
		vorlage = existing
		if err := vorlage.SetKundenIDs(req.KundenIDs); err != nil {
			return nil, err
		}
	} else {
		vorlage, err = tour.NewReihenfolgeVorlage(region, req.KundenIDs)
		if err != nil {
			return nil, err
		}
	}

	if err := s.vorlageRepo.Save(ctx, vorlage); err != nil {
		return nil, err
	}

	response := ToVorlageResponse(vorlage)
	return &response, nil
}

// GetByRegion retrieves the template of one region
func (s *VorlageService) GetByRegion(ctx context.Context, region string) (*VorlageResponse, error) {
	vorlage, err := s.vorlageRepo.FindByRegion(ctx, region)
	if err != nil {
		return nil, err
	}
	response := ToVorlageResponse(vorlage)
	return &response, nil
}

// List retrieves all templates
func (s *VorlageService) List(ctx context.Context, filter shared.Filter) ([]VorlageResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 50
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "region"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "asc"
	}

	vorlagen, err := s.vorlageRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]VorlageResponse, len(vorlagen))
	for i := range vorlagen {
		responses[i] = ToVorlageResponse(&vorlagen[i])
	}
	return responses, nil
}

// Delete removes the template of a region
func (s *VorlageService) Delete(ctx context.Context, region string) error {
	if _, err := s.vorlageRepo.FindByRegion(ctx, region); err != nil {
		return err
	}
	return s.vorlageRepo.DeleteByRegion(ctx, region)
}
