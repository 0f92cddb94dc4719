package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/cashbook-app/cashbook/internal/apperrors"
	"github.com/cashbook-app/cashbook/internal/core/domain"
	portsrepo "github.com/cashbook-app/cashbook/internal/core/ports/repositories"
	portssvc "github.com/cashbook-app/cashbook/internal/core/ports/services"
	"github.com/cashbook-app/cashbook/internal/dto"
	"github.com/cashbook-app/cashbook/internal/platform/logging"
)

// RootAccountName is the display name of the implicit top of the tree.
const RootAccountName = "Root Account"

// ImbalanceAccountPrefix names the per-currency catch-all accounts that
// absorb auto-balancing splits.
const ImbalanceAccountPrefix = "Imbalance-"

// accountService implements portssvc.AccountSvcFacade.
type accountService struct {
	accountRepo     portsrepo.AccountRepositoryWithTx
	commodityRepo   portsrepo.CommodityRepositoryFacade
	validate        *validator.Validate
	defaultCurrency string
}

// NewAccountService creates a new account service.
func NewAccountService(
	accountRepo portsrepo.AccountRepositoryWithTx,
	commodityRepo portsrepo.CommodityRepositoryFacade,
	validate *validator.Validate,
	defaultCurrency string,
) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo:     accountRepo,
		commodityRepo:   commodityRepo,
		validate:        validate,
		defaultCurrency: defaultCurrency,
	}
}

// CreateOrReplaceAccount upserts an account, defaulting the parent to the
// book's root and recomputing materialized full names.
func (s *accountService) CreateOrReplaceAccount(ctx context.Context, req dto.SaveAccountRequest) (*domain.Account, error) {
	logger := logging.FromCtx(ctx)

	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	accountType := domain.AccountType(req.Type)
	if accountType == domain.Root {
		return nil, fmt.Errorf("%w: the root account is managed by the engine", apperrors.ErrInvalidHierarchy)
	}

	if _, err := s.commodityRepo.FindCommodityByUID(ctx, req.CommodityUID); err != nil {
		return nil, fmt.Errorf("commodity %s: %w", req.CommodityUID, err)
	}

	parentUID := req.ParentUID
	if parentUID == "" {
		rootUID, err := s.GetOrCreateRootUID(ctx)
		if err != nil {
			return nil, err
		}
		parentUID = rootUID
	}
	parent, err := s.accountRepo.FindAccountByUID(ctx, parentUID)
	if err != nil {
		return nil, fmt.Errorf("parent account %s: %w", parentUID, err)
	}

	var existing *domain.Account
	if req.AccountUID != "" {
		if req.AccountUID == parentUID {
			return nil, fmt.Errorf("%w: account cannot be its own parent", apperrors.ErrInvalidHierarchy)
		}
		existing, err = s.accountRepo.FindAccountByUID(ctx, req.AccountUID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		if existing != nil {
			if err := s.ensureNotDescendant(ctx, parentUID, req.AccountUID); err != nil {
				return nil, err
			}
		}
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountUID:                req.AccountUID,
		Name:                      req.Name,
		Description:               req.Description,
		Type:                      accountType,
		CommodityUID:              req.CommodityUID,
		ParentUID:                 parentUID,
		FullName:                  domain.ChildFullName(parent.FullName, req.Name),
		Placeholder:               req.Placeholder,
		Hidden:                    req.Hidden,
		Favorite:                  req.Favorite,
		Color:                     req.Color,
		DefaultTransferAccountUID: req.DefaultTransferAccountUID,
		AuditFields:               domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	if account.AccountUID == "" {
		account.AccountUID = uuid.NewString()
	}
	if existing != nil {
		account.CreatedAt = existing.CreatedAt
	}

	// Rename or reparent invalidates every descendant's materialized path, so
	// the upsert and the cascade commit or roll back as one unit.
	if existing != nil && existing.FullName != account.FullName {
		err = s.accountRepo.WithTx(ctx, func(tx *sql.Tx) error {
			if err := s.accountRepo.SaveAccountInTx(ctx, tx, account); err != nil {
				return err
			}
			return s.cascadeFullNamesInTx(ctx, tx, account)
		})
	} else {
		err = s.accountRepo.SaveAccount(ctx, account)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("saved account", "accountUID", account.AccountUID, "fullName", account.FullName)
	return &account, nil
}

// ensureNotDescendant rejects reparenting an account under its own subtree by
// walking the parent chain upward from the candidate parent.
func (s *accountService) ensureNotDescendant(ctx context.Context, candidateParentUID, accountUID string) error {
	current := candidateParentUID
	for current != "" {
		if current == accountUID {
			return fmt.Errorf("%w: new parent is inside the account's subtree", apperrors.ErrInvalidHierarchy)
		}
		a, err := s.accountRepo.FindAccountByUID(ctx, current)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil
			}
			return err
		}
		current = a.ParentUID
	}
	return nil
}

// cascadeFullNamesInTx recomputes the materialized full names of every
// descendant of the account, level by level, inside the caller's atomic unit.
func (s *accountService) cascadeFullNamesInTx(ctx context.Context, tx *sql.Tx, account domain.Account) error {
	fullNames := make(map[string]string)
	parentFullName := map[string]string{account.AccountUID: account.FullName}
	frontier := []string{account.AccountUID}
	for len(frontier) > 0 {
		children, err := s.accountRepo.FindChildAccountsInTx(ctx, tx, frontier)
		if err != nil {
			return err
		}
		frontier = frontier[:0]
		for _, c := range children {
			fn := domain.ChildFullName(parentFullName[c.ParentUID], c.Name)
			fullNames[c.AccountUID] = fn
			parentFullName[c.AccountUID] = fn
			frontier = append(frontier, c.AccountUID)
		}
	}
	if len(fullNames) == 0 {
		return nil
	}
	return s.accountRepo.UpdateFullNamesInTx(ctx, tx, fullNames)
}

// GetAccountByUID retrieves an account.
func (s *accountService) GetAccountByUID(ctx context.Context, accountUID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByUID(ctx, accountUID)
}

// GetOrCreateRootUID returns the unique ROOT account's UID, creating it on
// demand. The insert is guarded by a partial unique index, so concurrent
// callers converge on one row.
func (s *accountService) GetOrCreateRootUID(ctx context.Context) (string, error) {
	root, err := s.accountRepo.FindRootAccount(ctx)
	if err == nil {
		return root.AccountUID, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return "", err
	}

	currency, err := s.commodityRepo.FindCurrencyByMnemonic(ctx, s.defaultCurrency)
	if err != nil {
		return "", fmt.Errorf("default currency %s: %w", s.defaultCurrency, err)
	}
	return s.accountRepo.EnsureRootAccount(ctx, rootCandidate(currency.CommodityUID))
}

// rootUIDInTx resolves the ROOT account's UID inside the caller's atomic unit,
// creating the singleton row when the book has none yet.
func (s *accountService) rootUIDInTx(ctx context.Context, tx *sql.Tx) (string, error) {
	root, err := s.accountRepo.FindRootAccountInTx(ctx, tx)
	if err == nil {
		return root.AccountUID, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return "", err
	}

	currency, err := s.commodityRepo.FindCurrencyByMnemonic(ctx, s.defaultCurrency)
	if err != nil {
		return "", fmt.Errorf("default currency %s: %w", s.defaultCurrency, err)
	}
	return s.accountRepo.EnsureRootAccountInTx(ctx, tx, rootCandidate(currency.CommodityUID))
}

func rootCandidate(commodityUID string) domain.Account {
	now := time.Now().UTC()
	return domain.Account{
		AccountUID:   uuid.NewString(),
		Name:         RootAccountName,
		Type:         domain.Root,
		CommodityUID: commodityUID,
		FullName:     domain.RootFullName,
		Placeholder:  true,
		Hidden:       true,
		AuditFields:  domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
}

// GetOrCreateImbalanceAccount returns the per-currency imbalance account,
// creating it under ROOT when absent.
func (s *accountService) GetOrCreateImbalanceAccount(ctx context.Context, currency domain.Commodity) (*domain.Account, error) {
	var account *domain.Account
	err := s.accountRepo.WithTx(ctx, func(tx *sql.Tx) error {
		var err error
		account, err = s.GetOrCreateImbalanceAccountInTx(ctx, tx, currency)
		return err
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// GetOrCreateImbalanceAccountInTx is GetOrCreateImbalanceAccount inside the
// caller's atomic unit; a freshly created account rolls back with the caller.
func (s *accountService) GetOrCreateImbalanceAccountInTx(ctx context.Context, tx *sql.Tx, currency domain.Commodity) (*domain.Account, error) {
	name := ImbalanceAccountPrefix + currency.Mnemonic
	existing, err := s.accountRepo.FindAccountByFullNameInTx(ctx, tx, name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	rootUID, err := s.rootUIDInTx(ctx, tx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountUID:   uuid.NewString(),
		Name:         name,
		Type:         domain.Bank,
		CommodityUID: currency.CommodityUID,
		ParentUID:    rootUID,
		FullName:     name,
		AuditFields:  domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	if err := s.accountRepo.SaveAccountInTx(ctx, tx, account); err != nil {
		return nil, err
	}
	logging.FromCtx(ctx).Info("created imbalance account", "name", name)
	return &account, nil
}

// ReassignDescendants moves every child of accountUID under newParentUID.
func (s *accountService) ReassignDescendants(ctx context.Context, accountUID, newParentUID string) error {
	if accountUID == newParentUID {
		return fmt.Errorf("%w: cannot reassign an account to itself", apperrors.ErrInvalidHierarchy)
	}
	if err := s.ensureNotDescendant(ctx, newParentUID, accountUID); err != nil {
		return err
	}
	return s.accountRepo.ReassignDescendants(ctx, accountUID, newParentUID)
}

// DeleteSubtree removes the account, its subtree, and every transaction
// touching any account in the subtree.
func (s *accountService) DeleteSubtree(ctx context.Context, accountUID string) (bool, error) {
	deleted, err := s.accountRepo.DeleteAccountSubtree(ctx, accountUID)
	if err != nil {
		return false, err
	}
	if deleted {
		logging.FromCtx(ctx).Info("deleted account subtree", "accountUID", accountUID)
	}
	return deleted, nil
}

// DescendantUIDs expands the subtree breadth-first. The starting account is
// always included; the optional filter prunes descendants, and a pruned
// account hides its whole subtree.
func (s *accountService) DescendantUIDs(ctx context.Context, accountUID string, filter *dto.DescendantFilter) ([]string, error) {
	if _, err := s.accountRepo.FindAccountByUID(ctx, accountUID); err != nil {
		return nil, err
	}

	var wantCommodity string
	if filter != nil && filter.SameCommodityAsUID != "" {
		ref, err := s.accountRepo.FindAccountByUID(ctx, filter.SameCommodityAsUID)
		if err != nil {
			return nil, err
		}
		wantCommodity = ref.CommodityUID
	}

	uids := []string{accountUID}
	frontier := []string{accountUID}
	for len(frontier) > 0 {
		children, err := s.accountRepo.FindChildAccounts(ctx, frontier)
		if err != nil {
			return nil, err
		}
		frontier = frontier[:0]
		for _, c := range children {
			if wantCommodity != "" && c.CommodityUID != wantCommodity {
				continue
			}
			uids = append(uids, c.AccountUID)
			frontier = append(frontier, c.AccountUID)
		}
	}
	return uids, nil
}

// FullName resolves the colon-joined path of an account, composing it from
// the parent chain when the materialized value is missing.
func (s *accountService) FullName(ctx context.Context, accountUID string) (string, error) {
	account, err := s.accountRepo.FindAccountByUID(ctx, accountUID)
	if err != nil {
		return "", err
	}
	if account.FullName != "" {
		return account.FullName, nil
	}
	if account.ParentUID == "" {
		return account.Name, nil
	}
	parentFullName, err := s.FullName(ctx, account.ParentUID)
	if err != nil {
		return "", err
	}
	return domain.ChildFullName(parentFullName, account.Name), nil
}

// ListTopLevelAccounts lists the direct children of ROOT.
func (s *accountService) ListTopLevelAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.accountRepo.ListTopLevelAccounts(ctx)
}

// ListFavoriteAccounts lists accounts flagged as favorites.
func (s *accountService) ListFavoriteAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.accountRepo.ListFavoriteAccounts(ctx)
}

// ListRecentAccounts lists accounts by most recent transaction activity.
func (s *accountService) ListRecentAccounts(ctx context.Context, limit int) ([]domain.Account, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive", apperrors.ErrValidation)
	}
	return s.accountRepo.ListRecentAccounts(ctx, limit)
}

// ListSubAccounts lists the direct children of an account.
func (s *accountService) ListSubAccounts(ctx context.Context, parentUID string) ([]domain.Account, error) {
	return s.accountRepo.FindChildAccounts(ctx, []string{parentUID})
}

// ListAccounts lists all non-hidden, non-ROOT accounts.
func (s *accountService) ListAccounts(ctx context.Context, orderByFullName bool) ([]domain.Account, error) {
	return s.accountRepo.ListAccounts(ctx, orderByFullName)
}
