// Package syscall implements the host/interop service the interpreter
// calls into on the SYSCALL opcode (§6.2): storage access and contract
// creation/migration against an in-memory, cache-backed worldview, and
// "not found" for chain-query syscalls this harness has no chain to
// answer.
package syscall

import (
	"sync"

	"github.com/golang/groupcache/lru"

	"github.com/wqq1991/neo-gui-nel/chaincontext"
	"github.com/wqq1991/neo-gui-nel/scripttable"
	"github.com/wqq1991/neo-gui-nel/trace"
)

const defaultCacheSize = 10000

// Account, Validator and Asset are placeholder worldview records;
// Dispatcher only ever needs to cache and return them, never interpret
// their fields.
type Account struct {
	Hash    [20]byte
	Balance int64
}

type Validator struct {
	PublicKey []byte
}

type Asset struct {
	ID     [32]byte
	Amount int64
}

// cache wraps groupcache/lru.Cache with a mutex, adapted from the
// prevalidatedTxsCache pattern in protocol/cache.go, generalized so
// the same shape backs four worldview caches here (accounts,
// validators, assets, storages) instead of one; contracts are kept in
// a scripttable.Table.
type cache struct {
	mu sync.Mutex
	c  *lru.Cache
}

func newCache() *cache {
	return &cache{c: lru.New(defaultCacheSize)}
}

func (c *cache) get(key interface{}) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.c.Get(key)
}

func (c *cache) put(key, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.c.Add(key, value)
}

func (c *cache) remove(key interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.c.Remove(key)
}

// storageKey identifies a (contract, key) pair in the storages cache.
type storageKey struct {
	contract [20]byte
	key      string
}

// Dispatcher is the concrete, in-memory implementation of the syscall
// service §6.2 describes as a consumed interface. It is constructed
// exactly as §4.6's bootstrap entry points expect.
type Dispatcher struct {
	persistingBlock *chaincontext.Block

	accounts   *cache
	validators *cache
	assets     *cache
	contracts  *scripttable.Table
	storages   *cache

	tracer trace.Recorder
}

// New constructs a Dispatcher over the given persisting block and the
// five worldview caches. A nil contracts table gets a fresh, empty one.
func New(
	persistingBlock *chaincontext.Block,
	accounts *Account,
	validators []Validator,
	assets *Asset,
	contracts *scripttable.Table,
	storages map[string][]byte,
) *Dispatcher {
	if contracts == nil {
		contracts = scripttable.New()
	}

	d := &Dispatcher{
		persistingBlock: persistingBlock,
		accounts:        newCache(),
		validators:      newCache(),
		assets:          newCache(),
		contracts:       contracts,
		storages:        newCache(),
		tracer:          trace.Null{},
	}

	if accounts != nil {
		d.accounts.put(accounts.Hash, accounts)
	}
	if assets != nil {
		d.assets.put(assets.ID, assets)
	}
	if len(validators) > 0 {
		d.validators.put("all", validators)
	}
	for k, v := range storages {
		d.storages.put(k, v)
	}

	return d
}

// BeginDebug attaches r so storage/contract operations are recorded
// alongside the interpreter's own steps, per §6.4.
func (d *Dispatcher) BeginDebug(r trace.Recorder) {
	d.tracer = r
}

// GetAccount returns the cached account for hash, if any.
func (d *Dispatcher) GetAccount(hash [20]byte) (*Account, bool) {
	v, ok := d.accounts.get(hash)
	if !ok {
		return nil, false
	}
	return v.(*Account), true
}

// GetAsset returns the cached asset for id, if any.
func (d *Dispatcher) GetAsset(id [32]byte) (*Asset, bool) {
	v, ok := d.assets.get(id)
	if !ok {
		return nil, false
	}
	return v.(*Asset), true
}

// GetValidators returns the cached validator set, if any was seeded.
func (d *Dispatcher) GetValidators() ([]Validator, bool) {
	v, ok := d.validators.get("all")
	if !ok {
		return nil, false
	}
	return v.([]Validator), true
}

// GetHeader, GetBlock and GetTransaction are stubs: this harness has no
// chain to query, block validation and persistence being explicitly
// out of scope. Callers needing real chain data supply their own
// syscall service implementation; this one exists so engine.Run works
// standalone.
func (d *Dispatcher) GetHeader([32]byte) (*chaincontext.Block, bool)      { return nil, false }
func (d *Dispatcher) GetBlock([32]byte) (*chaincontext.Block, bool)       { return nil, false }
func (d *Dispatcher) GetTransaction([32]byte) (*chaincontext.Transaction, bool) {
	return nil, false
}

// StorageGet implements Storage.Get.
func (d *Dispatcher) StorageGet(contract [20]byte, key []byte) ([]byte, bool) {
	d.noteOp("Storage.Get")
	v, ok := d.storages.get(storageKey{contract, string(key)})
	if !ok {
		return nil, false
	}
	return v.([]byte), true
}

// StoragePut implements Storage.Put.
func (d *Dispatcher) StoragePut(contract [20]byte, key, value []byte) {
	d.noteOp("Storage.Put")
	d.storages.put(storageKey{contract, string(key)}, value)
}

// StorageDelete implements Storage.Delete.
func (d *Dispatcher) StorageDelete(contract [20]byte, key []byte) {
	d.noteOp("Storage.Delete")
	d.storages.remove(storageKey{contract, string(key)})
}

// ContractCreate implements Contract.Create: it records the contract's
// script and property flags so the engine's Dynamic-Invoke Gate can
// later consult scripttable.Table.GetContractState.
func (d *Dispatcher) ContractCreate(scriptHash [20]byte, script []byte, props scripttable.Properties) {
	d.noteOp("Contract.Create")
	d.contracts.Put(scripttable.ContractState{
		ScriptHash: scriptHash,
		Script:     script,
		Properties: props,
	})
}

// ContractMigrate implements Contract.Migrate: it replaces the
// contract stored at oldHash with a new one at newHash, retiring the
// predecessor.
func (d *Dispatcher) ContractMigrate(oldHash, newHash [20]byte, script []byte, props scripttable.Properties) {
	d.noteOp("Contract.Migrate")
	d.contracts.Delete(oldHash)
	d.contracts.Put(scripttable.ContractState{
		ScriptHash: newHash,
		Script:     script,
		Properties: props,
	})
}

// ScriptTable exposes the underlying script table so the engine can be
// constructed to share it with this dispatcher.
func (d *Dispatcher) ScriptTable() *scripttable.Table {
	return d.contracts
}

func (d *Dispatcher) noteOp(name string) {
	d.tracer.ScriptLoaded("syscall:" + name)
}
