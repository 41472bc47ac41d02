package dashboard

import "net/http"

func (d *Dashboard) serveFrontend(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(frontendHTML))
}

const frontendHTML = `<!DOCTYPE html>
<html lang="en"><head>
<meta charset="utf-8"><meta name="viewport" content="width=device-width,initial-scale=1">
<title>PhishScan</title>
<link href="https://fonts.googleapis.com/css2?family=JetBrains+Mono:wght@300;400;500;600;700&family=Space+Grotesk:wght@400;500;600;700&display=swap" rel="stylesheet">
<style>
:root{--bg:#08090d;--sf:#0f1118;--sf2:#161923;--bd:#252a3a;--tx:#c8cdd8;--tx2:#8891a5;--ac:#3b82f6;--gn:#10b981;--rd:#ef4444;--or:#f59e0b}
*{margin:0;padding:0;box-sizing:border-box}
body{font-family:'JetBrains Mono',monospace;background:var(--bg);color:var(--tx);min-height:100vh}
.app{max-width:960px;margin:0 auto;padding:20px 24px}
.hdr{display:flex;justify-content:space-between;align-items:center;padding:16px 0;border-bottom:1px solid var(--bd);margin-bottom:24px}
.hdr h1{font-family:'Space Grotesk',sans-serif;font-size:22px;font-weight:700;background:linear-gradient(135deg,var(--ac),#a855f7);-webkit-background-clip:text;-webkit-text-fill-color:transparent}
.card{background:var(--sf);border:1px solid var(--bd);border-radius:10px;padding:18px;margin-bottom:18px}
.row{display:flex;gap:10px}
input{flex:1;font-family:inherit;font-size:13px;background:var(--sf2);border:1px solid var(--bd);border-radius:8px;color:var(--tx);padding:11px 14px}
input:focus{outline:none;border-color:var(--ac)}
button{font-family:inherit;font-size:12px;font-weight:600;background:var(--ac);color:#fff;border:none;border-radius:8px;padding:11px 22px;cursor:pointer}
button:disabled{opacity:.5;cursor:wait}
.hint{font-size:10px;color:var(--tx2);margin-top:8px}
.verdict{font-family:'Space Grotesk',sans-serif;font-size:18px;font-weight:700;margin-bottom:10px}
.verdict.bad{color:var(--rd)}.verdict.ok{color:var(--gn)}.verdict.info{color:var(--or)}
.stats{display:grid;grid-template-columns:repeat(auto-fit,minmax(130px,1fr));gap:10px;margin:12px 0}
.st{background:var(--sf2);border:1px solid var(--bd);border-radius:8px;padding:10px 12px}
.st .k{font-size:9px;color:var(--tx2);letter-spacing:1px;text-transform:uppercase}
.st .v{font-size:17px;font-weight:600;margin-top:3px}
table{width:100%;border-collapse:collapse;font-size:11px;margin-top:10px}
th{font-size:9px;color:var(--tx2);text-align:left;letter-spacing:1px;text-transform:uppercase;padding:6px 8px;border-bottom:1px solid var(--bd)}
td{padding:6px 8px;border-bottom:1px solid var(--sf2);word-break:break-all}
.addr{color:var(--ac)}
.tag{font-size:9px;padding:2px 7px;border-radius:10px;background:rgba(239,68,68,.12);color:var(--rd)}
.tag.g{background:rgba(16,185,129,.12);color:var(--gn)}
.err{color:var(--rd);font-size:12px}.msg{color:var(--or);font-size:12px}
.score{font-size:34px;font-weight:700}
h2{font-family:'Space Grotesk',sans-serif;font-size:14px;margin-bottom:8px;color:var(--tx2)}
#result,#spin{display:none}
.spinner{border:3px solid var(--sf2);border-top-color:var(--ac);border-radius:50%;width:26px;height:26px;animation:spin 1s linear infinite;margin:14px auto}
@keyframes spin{to{transform:rotate(360deg)}}
</style></head><body><div class="app">
<div class="hdr"><h1>🎣 PhishScan</h1><span style="font-size:10px;color:var(--tx2)">pump.fun &amp; four.meme token distribution checker</span></div>
<div class="card">
<div class="row"><input id="token" placeholder="Token address (Solana mint or 0x... BSC contract)">
<input id="curve" placeholder="Bonding curve (optional, auto-discovered)" style="max-width:300px">
<button id="go" onclick="check()">Check</button></div>
<div class="hint">Phishy = addresses that received the token before ever buying it (airdrop-to-simulate-demand). Checks can take up to a minute.</div>
</div>
<div id="spin" class="card"><div class="spinner"></div></div>
<div id="result" class="card"></div>
<div class="card"><h2>Recent phishy tokens</h2><div id="recent"><span style="font-size:11px;color:var(--tx2)">none yet</span></div></div>
</div>
<script>
const $=id=>document.getElementById(id);
function esc(s){return String(s??'').replace(/[&<>"]/g,c=>({'&':'&amp;','<':'&lt;','>':'&gt;','"':'&quot;'}[c]))}
function num(v){return (v??0).toLocaleString(undefined,{maximumFractionDigits:2})}
async function check(){
  const token=$('token').value.trim(),curve=$('curve').value.trim();
  if(!token)return;
  $('go').disabled=true;$('spin').style.display='block';$('result').style.display='none';
  try{
    const r=await fetch('/api/check',{method:'POST',headers:{'Content-Type':'application/json'},body:JSON.stringify({token_address:token,bonding_curve:curve})});
    const j=await r.json();render(j);loadRecent();
  }catch(e){$('result').style.display='block';$('result').innerHTML='<div class="err">'+esc(e.message)+'</div>'}
  $('go').disabled=false;$('spin').style.display='none';
}
function render(j){
  const el=$('result');el.style.display='block';
  if(!j.success){
    el.innerHTML=j.error_type==='info'?'<div class="msg">ℹ️ '+esc(j.error)+'</div>':'<div class="err">⚠️ '+esc(j.error)+'</div>';
    return;
  }
  const d=j.data||{};
  let h=j.phishy?'<div class="verdict bad">⚠️ TOKEN IS PHISHY</div>':(j.message?'<div class="verdict info">'+esc(j.message)+'</div>':'<div class="verdict ok">✅ No phishy behavior detected</div>');
  h+='<div class="stats">';
  h+='<div class="st"><div class="k">Risk score</div><div class="v score" style="color:'+(d.risk_score>=80?'var(--gn)':d.risk_score>=60?'var(--or)':'var(--rd)')+'">'+d.risk_score+'</div></div>';
  h+='<div class="st"><div class="k">Addresses</div><div class="v">'+d.total_addresses+'</div></div>';
  h+='<div class="st"><div class="k">Phishy</div><div class="v">'+d.phishy_count+'</div></div>';
  h+='<div class="st"><div class="k">Normal</div><div class="v">'+d.normal_count+'</div></div>';
  if(d.liquidity_sol!=null)h+='<div class="st"><div class="k">Liquidity</div><div class="v">'+num(d.liquidity_sol)+' SOL</div></div>';
  h+='</div>';
  const md=d.metadata;
  if(md)h+='<div style="font-size:11px;color:var(--tx2);margin-bottom:8px">'+esc(md.name||'')+' '+(md.symbol?'('+esc(md.symbol)+')':'')+(md.mayhem_mode?' <span class="tag">mayhem</span>':'')+(md.twitter?' · <a class="addr" href="'+esc(md.twitter)+'">twitter</a>':'')+(md.website?' · <a class="addr" href="'+esc(md.website)+'">site</a>':'')+'</div>';
  if(d.totals)h+='<div style="font-size:11px">Transferred to phishy: <b>'+num(d.totals.total_transferred)+'</b> · Bought: <b>'+num(d.totals.total_bought)+'</b> · Without buy: <b>'+num(d.totals.total_without_buy)+'</b></div>';
  if((d.phishy_addresses||[]).length){
    h+='<table><tr><th>Address</th><th>First transfer</th><th>First buy</th><th>Without buy</th><th>Reason</th></tr>';
    for(const p of d.phishy_addresses)h+='<tr><td class="addr">'+esc(p.address)+'</td><td>'+esc((p.first_transfer_time||'').replace('T',' ').slice(0,19))+'</td><td>'+esc(p.first_buy_time?p.first_buy_time.replace('T',' ').slice(0,19):'never')+'</td><td>'+num(p.transferred_without_buy)+'</td><td>'+esc(p.reason)+'</td></tr>';
    h+='</table>';
  }
  const ha=d.holder_analysis;
  if(ha){
    h+='<h2 style="margin-top:14px">Holder analysis</h2>';
    h+='<div style="font-size:11px">Creator '+num(ha.creator_percent)+'% '+tag(ha.creator_check_passed)+' · Whales '+tag(ha.other_holders_check_passed)+' · Top 10 '+num(ha.top10_percent)+'% '+tag(ha.top10_check_passed)+'</div>';
    if((ha.top_holders||[]).length){
      h+='<table><tr><th>Holder</th><th>%</th><th>Buys</th><th>Sells</th><th></th></tr>';
      for(const t of ha.top_holders)h+='<tr><td class="addr">'+esc(t.address)+'</td><td>'+num(t.percent)+'</td><td>'+t.buy_count+'</td><td>'+t.sell_count+'</td><td>'+(t.is_creator?'<span class="tag">creator</span>':'')+(t.is_known_agent?'<span class="tag">agent</span>':'')+'</td></tr>';
      h+='</table>';
    }
  }
  el.innerHTML=h;
}
function tag(ok){return ok?'<span class="tag g">pass</span>':'<span class="tag">fail</span>'}
async function loadRecent(){
  try{
    const j=await(await fetch('/api/recent-phishy')).json();
    if(!(j.tokens||[]).length)return;
    let h='<table><tr><th>Token</th><th>Type</th><th>Phishy</th><th>Without buy</th><th>Risk</th><th>When</th></tr>';
    for(const t of j.tokens)h+='<tr><td class="addr">'+esc(t.token_address)+'</td><td>'+esc(t.token_type)+'</td><td>'+t.phishy_count+'</td><td>'+num(t.total_without_buy)+'</td><td>'+t.risk_score+'</td><td>'+esc((t.detected_at||'').replace('T',' ').slice(0,19))+'</td></tr>';
    $('recent').innerHTML=h+'</table>';
  }catch(e){}
}
$('token').addEventListener('keydown',e=>{if(e.key==='Enter')check()});
loadRecent();
</script></body></html>`
