package finance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kampung/agustusan/internal/rest"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var ErrRemoteFailed = errors.New("remote transaction source failed")

// remoteNamespace derives stable ids for imported rows, so importing the
// same row twice is detected.
var remoteNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("agustusan/remote-transactions"))

// RemoteTransaction is a row of the read-only transactions table as served
// by GET /api/transactions.
type RemoteTransaction struct {
	Id          int         `json:"Id"`
	Type        string      `json:"Type"`
	Description string      `json:"Description"`
	Amount      json.Number `json:"Amount"`
	Date        string      `json:"Date"`
}

func (r RemoteTransaction) toTransaction() (Transaction, error) {
	txType, err := ParseType(r.Type)
	if err != nil {
		return Transaction{}, err
	}
	amount, err := decimal.NewFromString(r.Amount.String())
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid amount %q: %w", r.Amount, err)
	}
	if !amount.IsPositive() {
		return Transaction{}, fmt.Errorf("amount must be positive, got %s", amount)
	}
	if _, err := time.Parse(time.DateOnly, r.Date); err != nil {
		return Transaction{}, fmt.Errorf("invalid date %q: %w", r.Date, err)
	}
	return Transaction{
		Id:          uuid.NewSHA1(remoteNamespace, []byte(strconv.Itoa(r.Id))).String(),
		Type:        txType,
		Description: r.Description,
		Amount:      amount,
		Date:        r.Date,
	}, nil
}

// RemoteSource yields the remote transactions, newest first.
type RemoteSource interface {
	FetchTransactions(ctx context.Context) ([]RemoteTransaction, error)
}

type RemoteRepository interface {
	GetAll(ctx context.Context) ([]RemoteTransaction, error)
}

type RemoteRepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRemoteRepository(db *pgxpool.Pool) *RemoteRepositoryImpl {
	return &RemoteRepositoryImpl{db: db}
}

func (r *RemoteRepositoryImpl) GetAll(ctx context.Context) ([]RemoteTransaction, error) {
	query := `SELECT id, type, description, amount::text, to_char(date, 'YYYY-MM-DD')
		FROM transactions
		ORDER BY date DESC, id DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (RemoteTransaction, error) {
		var t RemoteTransaction
		var amount string
		if err := row.Scan(&t.Id, &t.Type, &t.Description, &amount, &t.Date); err != nil {
			return RemoteTransaction{}, err
		}
		t.Amount = json.Number(amount)
		return t, nil
	})
}

// FetchTransactions lets the repository serve as a RemoteSource when the
// database is reachable from this process.
func (r *RemoteRepositoryImpl) FetchTransactions(ctx context.Context) ([]RemoteTransaction, error) {
	return r.GetAll(ctx)
}

type RemoteHandler struct {
	repo RemoteRepository
}

func NewRemoteHandler(repo RemoteRepository) *RemoteHandler {
	return &RemoteHandler{repo: repo}
}

// GetAll godoc
// @Summary List transactions
// @Description Return every transaction row of the remote store
// @Tags Transaction
// @Produce json
// @Success 200 {array} RemoteTransaction
// @Failure 500 {object} rest.ErrorResponse "Failed to retrieve transactions"
// @Router /api/transactions [get]
func (h *RemoteHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.repo.GetAll(r.Context())
	if err != nil {
		log.Errorf("failed to retrieve transactions: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "Failed to retrieve transactions.", err)
		return
	}
	if transactions == nil {
		transactions = []RemoteTransaction{}
	}
	log.Debugf("serving %d transaction row(s)", len(transactions))
	rest.WriteJSON(w, http.StatusOK, transactions)
}

// RemoteClient reads another instance's /api/transactions endpoint.
type RemoteClient struct {
	url        string
	httpClient *http.Client
}

func NewRemoteClient(url string, httpClient *http.Client) *RemoteClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &RemoteClient{url: url, httpClient: httpClient}
}

func (c *RemoteClient) FetchTransactions(ctx context.Context) ([]RemoteTransaction, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		log.Errorf("Failed to create request: %v", err)
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Errorf("Failed to execute request: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var failure rest.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&failure); err != nil || failure.Error == "" {
			return nil, fmt.Errorf("%w: status %d", ErrRemoteFailed, resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: %s (%s)", ErrRemoteFailed, failure.Error, failure.Details)
	}

	var transactions []RemoteTransaction
	if err := json.NewDecoder(resp.Body).Decode(&transactions); err != nil {
		log.Errorf("Failed to decode response: %v", err)
		return nil, err
	}
	return transactions, nil
}
