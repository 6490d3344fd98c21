package riff

// Factory creates the descriptor shell used to parse a chunk with the given
// identifier. The returned shell is unpopulated: the parser fills in the header,
// list type, children and payload reference. Supplying a different Factory is
// the way to teach the parser about additional list-like identifiers.
type Factory interface {
	Create(id FourCC) Descriptor
}

// FactoryFunc adapts an ordinary function to the Factory interface.
type FactoryFunc func(id FourCC) Descriptor

func (f FactoryFunc) Create(id FourCC) Descriptor { return f(id) }

// BasicFactory knows the two list identifiers every RIFF file uses.
// Matching is case-insensitive.
type BasicFactory struct{}

func (BasicFactory) Create(id FourCC) Descriptor {
	switch {
	case id.EqualFold(RootID):
		return &ListDescriptor{Header: Header{ID: id}, Root: true}
	case id.EqualFold(ListID):
		return &ListDescriptor{Header: Header{ID: id}}
	default:
		return &RawDescriptor{Header: Header{ID: id}}
	}
}

// ContainerFactory extends Base with extra identifiers that are parsed as lists.
type ContainerFactory struct {
	// Base handles every identifier not listed in Containers. Nil means BasicFactory.
	Base Factory
	// Containers are matched case-insensitively.
	Containers []FourCC
}

func (f ContainerFactory) Create(id FourCC) Descriptor {
	for _, c := range f.Containers {
		if id.EqualFold(c) {
			return &ListDescriptor{Header: Header{ID: id}}
		}
	}
	if f.Base == nil {
		return BasicFactory{}.Create(id)
	}
	return f.Base.Create(id)
}
