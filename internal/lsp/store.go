package lsp

import "sync"

// DefaultMaxDocuments bounds how many open documents a session tracks.
const DefaultMaxDocuments = 128

// DocumentStore keeps the text of open documents keyed by URI. The store is
// bounded: once maxDocuments is exceeded the least recently used document is
// dropped, so a long editing session cannot grow memory without limit.
type DocumentStore struct {
	documents    map[string]*document
	head         *document // Most recently used.
	tail         *document // Least recently used.
	maxDocuments int
	mu           sync.Mutex
}

// document is a doubly-linked list node for LRU tracking.
type document struct {
	uri     string
	content string
	prev    *document
	next    *document
}

// NewDocumentStore creates an empty store holding at most maxDocuments
// documents. Non-positive limits fall back to DefaultMaxDocuments.
func NewDocumentStore(maxDocuments int) *DocumentStore {
	if maxDocuments <= 0 {
		maxDocuments = DefaultMaxDocuments
	}

	return &DocumentStore{
		documents:    make(map[string]*document),
		maxDocuments: maxDocuments,
	}
}

// Set stores document content for the given URI, evicting the least recently
// used document when the store is full.
func (ds *DocumentStore) Set(uri, content string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if doc, ok := ds.documents[uri]; ok {
		doc.content = content
		ds.moveToFront(doc)

		return
	}

	doc := &document{uri: uri, content: content}
	ds.documents[uri] = doc
	ds.addToFront(doc)

	for len(ds.documents) > ds.maxDocuments && ds.tail != nil {
		ds.evictTail()
	}
}

// Get retrieves document content by URI and marks it recently used.
func (ds *DocumentStore) Get(uri string) (string, bool) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	doc, ok := ds.documents[uri]
	if !ok {
		return "", false
	}

	ds.moveToFront(doc)

	return doc.content, true
}

// Delete removes document content by URI.
func (ds *DocumentStore) Delete(uri string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	doc, ok := ds.documents[uri]
	if !ok {
		return
	}

	ds.removeFromList(doc)
	delete(ds.documents, uri)
}

// Len returns the number of stored documents.
func (ds *DocumentStore) Len() int {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	return len(ds.documents)
}

// moveToFront moves a document to the front of the LRU list (most recently used).
func (ds *DocumentStore) moveToFront(doc *document) {
	if doc == ds.head {
		return
	}

	ds.removeFromList(doc)
	ds.addToFront(doc)
}

// addToFront adds a document to the front of the LRU list.
func (ds *DocumentStore) addToFront(doc *document) {
	doc.prev = nil
	doc.next = ds.head

	if ds.head != nil {
		ds.head.prev = doc
	}

	ds.head = doc

	if ds.tail == nil {
		ds.tail = doc
	}
}

// removeFromList removes a document from the LRU list.
func (ds *DocumentStore) removeFromList(doc *document) {
	if doc.prev != nil {
		doc.prev.next = doc.next
	} else {
		ds.head = doc.next
	}

	if doc.next != nil {
		doc.next.prev = doc.prev
	} else {
		ds.tail = doc.prev
	}
}

// evictTail drops the least recently used document.
func (ds *DocumentStore) evictTail() {
	victim := ds.tail

	ds.removeFromList(victim)
	delete(ds.documents, victim.uri)
}
