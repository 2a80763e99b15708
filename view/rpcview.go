package view

import "github.com/nswarm/apyxl/model"

// RpcView is the immutable projection of a model.Rpc.
type RpcView struct {
	v   View
	rpc *model.Rpc
}

func (r RpcView) Name() string {
	name := r.rpc.Name()
	for _, t := range r.v.transforms.Rpc {
		name = t.RenameRpc(name)
	}
	return name
}

func (r RpcView) EntityId() (model.EntityId, bool) { return r.rpc.Attributes().EntityId() }

func (r RpcView) Attributes() model.Attributes {
	return r.v.transforms.rewriteAttributes(*r.rpc.Attributes())
}

// ParamView is the immutable projection of a model.Param.
type ParamView struct {
	v     View
	param model.Param
}

func (p ParamView) Name() string { return p.param.ParamName }

func (p ParamView) Type() model.TypeRef {
	ty := p.param.Type
	for _, t := range p.v.transforms.Rpc {
		ty = t.RewriteParamType(ty)
	}
	return ty
}

func (p ParamView) Attributes() model.Attributes {
	return p.v.transforms.rewriteAttributes(p.param.Attributes)
}

// Params returns the Rpc's parameters after every RpcTransform's
// ReorderParams has applied, in chain order.
func (r RpcView) Params() []ParamView {
	params := append([]model.Param(nil), r.rpc.Params...)
	for _, t := range r.v.transforms.Rpc {
		params = t.ReorderParams(params)
	}
	out := make([]ParamView, len(params))
	for i, p := range params {
		out[i] = ParamView{v: r.v, param: p}
	}
	return out
}

// Return returns the Rpc's return type, rewritten by every
// RpcTransform's RewriteReturn in chain order, and whether it has one.
func (r RpcView) Return() (model.TypeRef, bool) {
	ret := r.rpc.Return
	for _, t := range r.v.transforms.Rpc {
		ret = t.RewriteReturn(ret)
	}
	if ret == nil {
		return model.TypeRef{}, false
	}
	return *ret, true
}
