package mib

// Builder constructs a Mib incrementally. Use NewBuilder to create one,
// register the module contents, then call Mib() to get the final immutable
// table. The compiled-in baseline uses this; tests register small fixture
// trees the same way.
type Builder struct {
	mib    *Mib
	module string
}

// NewBuilder creates a new Builder with an empty table.
func NewBuilder() *Builder {
	return &Builder{mib: newMib()}
}

// Mib returns the constructed table.
// After calling this, the Builder should not be used further.
func (b *Builder) Mib() *Mib {
	b.mib.nodeCount = 0
	for range b.mib.Nodes() {
		b.mib.nodeCount++
	}
	return b.mib
}

// Module sets the module name attributed to subsequently added nodes.
func (b *Builder) Module(name string) *Builder {
	b.module = name
	return b
}

// AddType registers a named type (textual convention) for reuse.
func (b *Builder) AddType(t *Type) *Builder {
	if t.Name() != "" && b.mib.typeByName[t.Name()] == nil {
		b.mib.typeByName[t.Name()] = t
	}
	return b
}

// Add registers a named node at the given OID with the given kind, creating
// intermediate unnamed nodes as needed. A nil typ registers a bare identity
// node.
func (b *Builder) Add(name string, oid Oid, kind Kind, typ *Type) *Builder {
	nd := b.mib.root
	for _, arc := range oid {
		nd = nd.getOrCreateChild(arc)
	}
	nd.name = name
	nd.kind = kind
	nd.typ = typ
	nd.module = b.module
	if name != "" {
		b.mib.nameToNodes[name] = append(b.mib.nameToNodes[name], nd)
	}
	return b
}

// AddScalar registers a scalar object.
func (b *Builder) AddScalar(name string, oid Oid, typ *Type) *Builder {
	return b.Add(name, oid, KindScalar, typ)
}

// AddColumn registers a table column object.
func (b *Builder) AddColumn(name string, oid Oid, typ *Type) *Builder {
	return b.Add(name, oid, KindColumn, typ)
}

// AddNode registers a bare identity node.
func (b *Builder) AddNode(name string, oid Oid) *Builder {
	return b.Add(name, oid, KindNode, nil)
}
